package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockRepository(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewRepository(mock, zap.NewNop()), mock
}

func TestClassify(t *testing.T) {
	dup := classify(&pgconn.PgError{Code: "23505", ConstraintName: "tickets_showtime_seat_key"})
	assert.ErrorIs(t, dup, ErrDuplicate)
	assert.Equal(t, "tickets_showtime_seat_key", ConstraintName(dup))

	wrapped := fmt.Errorf("create ticket: %w", dup)
	assert.ErrorIs(t, wrapped, ErrDuplicate)
	assert.Equal(t, "tickets_showtime_seat_key", ConstraintName(wrapped))

	fk := classify(&pgconn.PgError{Code: "23503", ConstraintName: "showtimes_movie_id_fkey"})
	assert.ErrorIs(t, fk, ErrReferenced)
	assert.Equal(t, "showtimes_movie_id_fkey", ConstraintName(fk))

	assert.Empty(t, ConstraintName(errors.New("connection reset")))

	other := errors.New("connection reset")
	assert.Same(t, other, classify(other))
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE sessions").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.Tx.WithinTx(context.Background(), func(tx *Repository) error {
		return tx.Session.Revoke(context.Background(), uuid.New())
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	repo, mock := newMockRepository(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.Tx.WithinTx(context.Background(), func(tx *Repository) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
