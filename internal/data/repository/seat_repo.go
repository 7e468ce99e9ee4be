package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatRepository interface {
	Create(ctx context.Context, seat *entity.Seat) error
	FindByID(ctx context.Context, id int64) (*entity.Seat, error)
	FindByRoomID(ctx context.Context, roomID int64) ([]*entity.Seat, error)
	CountByRoomID(ctx context.Context, roomID int64) (int, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// Seats of the showtime's room with no ticket for that showtime.
	FindAvailableByShowtime(ctx context.Context, showtimeID int64) ([]*entity.Seat, error)
}

type seatRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSeatRepository(db database.Querier, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) Create(ctx context.Context, seat *entity.Seat) error {
	query := `
		INSERT INTO seats (room_id, code)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, query, seat.RoomID, seat.Code).Scan(&seat.ID); err != nil {
		r.log.Error("Failed to create seat",
			zap.Error(err),
			zap.Int64("room_id", seat.RoomID),
			zap.String("code", seat.Code),
		)
		return fmt.Errorf("create seat %s in room %d: %w", seat.Code, seat.RoomID, classify(err))
	}

	return nil
}

func (r *seatRepository) FindByID(ctx context.Context, id int64) (*entity.Seat, error) {
	query := `SELECT id, room_id, code FROM seats WHERE id = $1`

	var seat entity.Seat
	if err := r.db.QueryRow(ctx, query, id).Scan(&seat.ID, &seat.RoomID, &seat.Code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find seat", zap.Error(err), zap.Int64("seat_id", id))
		return nil, fmt.Errorf("find seat %d: %w", id, err)
	}

	return &seat, nil
}

func (r *seatRepository) FindByRoomID(ctx context.Context, roomID int64) ([]*entity.Seat, error) {
	query := `
		SELECT id, room_id, code
		FROM seats
		WHERE room_id = $1
		ORDER BY code
	`

	seats, err := r.list(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to list seats", zap.Error(err), zap.Int64("room_id", roomID))
		return nil, fmt.Errorf("list seats of room %d: %w", roomID, err)
	}

	return seats, nil
}

func (r *seatRepository) FindAvailableByShowtime(ctx context.Context, showtimeID int64) ([]*entity.Seat, error) {
	query := `
		SELECT s.id, s.room_id, s.code
		FROM showtimes sh
		JOIN seats s ON s.room_id = sh.room_id
		LEFT JOIN tickets t ON t.showtime_id = sh.id AND t.seat_id = s.id
		WHERE sh.id = $1 AND t.id IS NULL
		ORDER BY s.code
	`

	seats, err := r.list(ctx, query, showtimeID)
	if err != nil {
		r.log.Error("Failed to list available seats", zap.Error(err), zap.Int64("showtime_id", showtimeID))
		return nil, fmt.Errorf("list available seats of showtime %d: %w", showtimeID, err)
	}

	return seats, nil
}

func (r *seatRepository) list(ctx context.Context, query string, arg int64) ([]*entity.Seat, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		if err := rows.Scan(&seat.ID, &seat.RoomID, &seat.Code); err != nil {
			return nil, err
		}
		seats = append(seats, &seat)
	}

	return seats, rows.Err()
}

func (r *seatRepository) CountByRoomID(ctx context.Context, roomID int64) (int, error) {
	query := `SELECT COUNT(*) FROM seats WHERE room_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, roomID).Scan(&count); err != nil {
		r.log.Error("Failed to count seats", zap.Error(err), zap.Int64("room_id", roomID))
		return 0, fmt.Errorf("count seats of room %d: %w", roomID, err)
	}

	return count, nil
}

// Delete reports false when no seat had that id. A seat with tickets fails
// with ErrReferenced.
func (r *seatRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM seats WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete seat", zap.Error(err), zap.Int64("seat_id", id))
		return false, fmt.Errorf("delete seat %d: %w", id, classify(err))
	}

	return tag.RowsAffected() > 0, nil
}
