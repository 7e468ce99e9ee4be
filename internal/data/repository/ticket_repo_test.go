package repository

import (
	"context"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRepository_Create(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO tickets").
		WithArgs(int64(1), int64(2), int64(3), int64(850)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), now))

	ticket := &entity.Ticket{ShowtimeID: 1, UserID: 2, SeatID: 3, PriceCents: 850}
	require.NoError(t, repo.Ticket.Create(context.Background(), ticket))

	assert.Equal(t, int64(11), ticket.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_CreateSeatTaken(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("INSERT INTO tickets").
		WithArgs(int64(1), int64(2), int64(3), int64(850)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "tickets_showtime_seat_key"})

	err := repo.Ticket.Create(context.Background(), &entity.Ticket{ShowtimeID: 1, UserID: 2, SeatID: 3, PriceCents: 850})

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_FindByIDsForUpdate(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery("FOR UPDATE").
		WithArgs([]int64{11, 12}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "showtime_id", "user_id", "seat_id", "price_cents", "created_at"}).
			AddRow(int64(11), int64(1), int64(2), int64(3), int64(850), now).
			AddRow(int64(12), int64(1), int64(2), int64(4), int64(850), now))

	tickets, err := repo.Ticket.FindByIDsForUpdate(context.Background(), []int64{11, 12})

	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, int64(4), tickets[1].SeatID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_DeleteUnbilled(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("DELETE FROM tickets").
		WithArgs([]int64{11, 12}, int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	released, err := repo.Ticket.DeleteUnbilled(context.Background(), 2, []int64{11, 12})

	require.NoError(t, err)
	assert.Equal(t, int64(2), released)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_CountBySeatID(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("FROM tickets WHERE seat_id").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.Ticket.CountBySeatID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
