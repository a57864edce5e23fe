package database

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpener hands out a pgxmock pool as the session and counts releases.
type fakeOpener struct {
	session  Session
	openErr  error
	released int
}

func (f *fakeOpener) OpenSession(context.Context) (Session, func(), error) {
	if f.openErr != nil {
		return nil, nil, f.openErr
	}
	return f.session, func() { f.released++ }, nil
}

func newFakeOpener(t *testing.T) (*fakeOpener, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &fakeOpener{session: mock}, mock
}

func TestWithSession_ReleasesOnSuccess(t *testing.T) {
	opener, mock := newFakeOpener(t)
	mock.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))

	err := WithSession(context.Background(), opener, func(s Session) error {
		_, err := s.Exec(context.Background(), "SELECT 1")
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 1, opener.released)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithSession_ReleasesOnError(t *testing.T) {
	opener, _ := newFakeOpener(t)
	boom := errors.New("insert failed")

	err := WithSession(context.Background(), opener, func(Session) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, opener.released)
}

func TestWithSession_ReleasesOnPanic(t *testing.T) {
	opener, _ := newFakeOpener(t)

	assert.Panics(t, func() {
		_ = WithSession(context.Background(), opener, func(Session) error {
			panic("handler blew up")
		})
	})
	assert.Equal(t, 1, opener.released)
}

func TestWithSession_OpenFailure(t *testing.T) {
	opener := &fakeOpener{openErr: errors.New("connection refused")}
	called := false

	err := WithSession(context.Background(), opener, func(Session) error {
		called = true
		return nil
	})

	assert.ErrorContains(t, err, "opening database session")
	assert.ErrorContains(t, err, "connection refused")
	assert.False(t, called)
	assert.Zero(t, opener.released)
}
