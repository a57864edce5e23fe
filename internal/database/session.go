package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Session is a unit-of-work handle to the database, scoped to one request.
//
// *pgxpool.Conn, *pgxpool.Pool and pgx.Tx all satisfy it. Statements run in
// autocommit unless the caller starts a transaction with Begin.
type Session interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SessionOpener hands out sessions together with the function that
// returns them.
type SessionOpener interface {
	OpenSession(ctx context.Context) (Session, func(), error)
}

// OpenSession acquires a dedicated pool connection. The caller must invoke
// release exactly once; WithSession does this on every exit path.
func (db *Database) OpenSession(ctx context.Context) (Session, func(), error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	return conn, conn.Release, nil
}

// WithSession runs fn with a freshly opened session and releases it
// afterwards, including when fn returns an error or panics.
func WithSession(ctx context.Context, opener SessionOpener, fn func(Session) error) error {
	session, release, err := opener.OpenSession(ctx)
	if err != nil {
		return fmt.Errorf("opening database session: %w", err)
	}
	defer release()

	return fn(session)
}
