package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id int64) (*entity.ShowtimeDetail, error)
	FindAll(ctx context.Context) ([]*entity.ShowtimeDetail, error)
	ExistsSlot(ctx context.Context, roomID int64, date, clock time.Time) (bool, error)
	CountByMovieID(ctx context.Context, movieID int64) (int, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type showtimeRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewShowtimeRepository(db database.Querier, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeDetailSelect = `
	SELECT sh.id, sh.movie_id, sh.room_id, sh.show_date, sh.show_time, sh.created_at,
	       m.title, m.price_cents, r.name
	FROM showtimes sh
	JOIN movies m ON m.id = sh.movie_id
	JOIN rooms r ON r.id = sh.room_id
`

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, room_id, show_date, show_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		showtime.MovieID,
		showtime.RoomID,
		showtime.ShowDate,
		clockToPg(showtime.ShowTime),
	).Scan(&showtime.ID, &showtime.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.Int64("movie_id", showtime.MovieID),
			zap.Int64("room_id", showtime.RoomID),
		)
		return fmt.Errorf("create showtime: %w", classify(err))
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id int64) (*entity.ShowtimeDetail, error) {
	query := showtimeDetailSelect + ` WHERE sh.id = $1`

	showtime, err := scanShowtimeDetail(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find showtime", zap.Error(err), zap.Int64("showtime_id", id))
		return nil, fmt.Errorf("find showtime %d: %w", id, err)
	}

	return showtime, nil
}

func (r *showtimeRepository) FindAll(ctx context.Context) ([]*entity.ShowtimeDetail, error) {
	query := showtimeDetailSelect + ` ORDER BY sh.show_date, sh.show_time, r.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, fmt.Errorf("list showtimes: %w", err)
	}
	defer rows.Close()

	var showtimes []*entity.ShowtimeDetail
	for rows.Next() {
		showtime, err := scanShowtimeDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime: %w", err)
		}
		showtimes = append(showtimes, showtime)
	}

	return showtimes, rows.Err()
}

func (r *showtimeRepository) ExistsSlot(ctx context.Context, roomID int64, date, clock time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM showtimes
			WHERE room_id = $1 AND show_date = $2 AND show_time = $3
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, roomID, date, clockToPg(clock)).Scan(&exists); err != nil {
		r.log.Error("Failed to check showtime slot", zap.Error(err), zap.Int64("room_id", roomID))
		return false, fmt.Errorf("check slot of room %d: %w", roomID, err)
	}

	return exists, nil
}

func (r *showtimeRepository) CountByMovieID(ctx context.Context, movieID int64) (int, error) {
	query := `SELECT COUNT(*) FROM showtimes WHERE movie_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, movieID).Scan(&count); err != nil {
		r.log.Error("Failed to count showtimes", zap.Error(err), zap.Int64("movie_id", movieID))
		return 0, fmt.Errorf("count showtimes of movie %d: %w", movieID, err)
	}

	return count, nil
}

// Delete reports false when no showtime had that id. A showtime with tickets
// fails with ErrReferenced.
func (r *showtimeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM showtimes WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete showtime", zap.Error(err), zap.Int64("showtime_id", id))
		return false, fmt.Errorf("delete showtime %d: %w", id, classify(err))
	}

	return tag.RowsAffected() > 0, nil
}

func scanShowtimeDetail(row pgx.Row) (*entity.ShowtimeDetail, error) {
	var showtime entity.ShowtimeDetail
	var clock pgtype.Time
	err := row.Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.RoomID,
		&showtime.ShowDate,
		&clock,
		&showtime.CreatedAt,
		&showtime.MovieTitle,
		&showtime.PriceCents,
		&showtime.RoomName,
	)
	if err != nil {
		return nil, err
	}

	showtime.ShowTime = clockFromPg(clock)
	return &showtime, nil
}
