package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// Migrations are compiled into the binary.
//
//go:embed migrations/*.sql
var migrations embed.FS

// VersionTable records the applied migration version.
const VersionTable = "schema_version"

// CreateSchema ensures every table the service needs exists.
//
// It runs the embedded tern migrations on one pooled connection. tern holds
// an advisory lock while migrating and skips versions already recorded in
// VersionTable, so calling CreateSchema repeatedly (or from several
// instances at once) is safe.
func (db *Database) CreateSchema(ctx context.Context) error {
	return CreateSchema(ctx, db, db.log)
}

// CreateSchema migrates the database behind db's pool to the latest
// embedded version.
func CreateSchema(ctx context.Context, db *Database, logger *zerolog.Logger) error {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection for migrations: %w", err)
	}
	defer conn.Release()

	m, err := tern.NewMigrator(ctx, conn.Conn(), VersionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database schema: %w", err)
	}

	latest := int32(len(m.Migrations))
	if from == latest {
		logger.Info().Int32("version", latest).Msg("database schema up to date")
	} else {
		logger.Info().Int32("from", from).Int32("to", latest).Msg("migrated database schema")
	}
	return nil
}
