package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"go.uber.org/zap"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	ExistsForSeat(ctx context.Context, showtimeID, seatID int64) (bool, error)
	CountBySeatID(ctx context.Context, seatID int64) (int, error)
	CountByShowtimeID(ctx context.Context, showtimeID int64) (int, error)

	// FindByIDsForUpdate locks the rows until the surrounding transaction ends.
	FindByIDsForUpdate(ctx context.Context, ids []int64) ([]*entity.Ticket, error)

	// DeleteUnbilled removes the user's tickets that no receipt references.
	DeleteUnbilled(ctx context.Context, userID int64, ids []int64) (int64, error)
}

type ticketRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTicketRepository(db database.Querier, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

// Create fails with ErrDuplicate when the seat already has a ticket for the
// showtime.
func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (showtime_id, user_id, seat_id, price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		ticket.ShowtimeID,
		ticket.UserID,
		ticket.SeatID,
		ticket.PriceCents,
	).Scan(&ticket.ID, &ticket.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.Int64("showtime_id", ticket.ShowtimeID),
			zap.Int64("seat_id", ticket.SeatID),
			zap.Int64("user_id", ticket.UserID),
		)
		return fmt.Errorf("create ticket for seat %d: %w", ticket.SeatID, classify(err))
	}

	return nil
}

func (r *ticketRepository) ExistsForSeat(ctx context.Context, showtimeID, seatID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tickets WHERE showtime_id = $1 AND seat_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, showtimeID, seatID).Scan(&exists); err != nil {
		r.log.Error("Failed to check seat ticket",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
			zap.Int64("seat_id", seatID),
		)
		return false, fmt.Errorf("check ticket for seat %d: %w", seatID, err)
	}

	return exists, nil
}

func (r *ticketRepository) CountBySeatID(ctx context.Context, seatID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tickets WHERE seat_id = $1`, "seat_id", seatID)
}

func (r *ticketRepository) CountByShowtimeID(ctx context.Context, showtimeID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tickets WHERE showtime_id = $1`, "showtime_id", showtimeID)
}

func (r *ticketRepository) count(ctx context.Context, query, field string, id int64) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, query, id).Scan(&count); err != nil {
		r.log.Error("Failed to count tickets", zap.Error(err), zap.Int64(field, id))
		return 0, fmt.Errorf("count tickets by %s %d: %w", field, id, err)
	}
	return count, nil
}

func (r *ticketRepository) FindByIDsForUpdate(ctx context.Context, ids []int64) ([]*entity.Ticket, error) {
	query := `
		SELECT id, showtime_id, user_id, seat_id, price_cents, created_at
		FROM tickets
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to load tickets", zap.Error(err), zap.Int64s("ticket_ids", ids))
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.ShowtimeID,
			&ticket.UserID,
			&ticket.SeatID,
			&ticket.PriceCents,
			&ticket.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, rows.Err()
}

func (r *ticketRepository) DeleteUnbilled(ctx context.Context, userID int64, ids []int64) (int64, error) {
	query := `
		DELETE FROM tickets t
		WHERE t.id = ANY($1)
		  AND t.user_id = $2
		  AND NOT EXISTS (SELECT 1 FROM receipt_tickets rt WHERE rt.ticket_id = t.id)
	`

	tag, err := r.db.Exec(ctx, query, ids, userID)
	if err != nil {
		r.log.Error("Failed to release tickets",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64s("ticket_ids", ids),
		)
		return 0, fmt.Errorf("release tickets of user %d: %w", userID, err)
	}

	return tag.RowsAffected(), nil
}
