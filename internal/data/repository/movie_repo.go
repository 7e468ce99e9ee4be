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

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.MovieDetail, error)
	FindAll(ctx context.Context) ([]*entity.MovieDetail, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type movieRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMovieRepository(db database.Querier, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieDetailColumns = `
	m.id, m.title, m.duration_minutes, m.price_cents, m.genre_id, m.audience_type_id, m.created_at,
	g.name, a.description
`

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, duration_minutes, price_cents, genre_id, audience_type_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		movie.Title,
		movie.DurationMinutes,
		movie.PriceCents,
		movie.GenreID,
		movie.AudienceTypeID,
	).Scan(&movie.ID, &movie.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
			zap.Int64("genre_id", movie.GenreID),
			zap.Int64("audience_type_id", movie.AudienceTypeID),
		)
		return fmt.Errorf("create movie %s: %w", movie.Title, classify(err))
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.MovieDetail, error) {
	query := `
		SELECT ` + movieDetailColumns + `
		FROM movies m
		JOIN genres g ON g.id = m.genre_id
		JOIN audience_types a ON a.id = m.audience_type_id
		WHERE m.id = $1
	`

	movie, err := scanMovieDetail(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find movie", zap.Error(err), zap.Int64("movie_id", id))
		return nil, fmt.Errorf("find movie %d: %w", id, err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.MovieDetail, error) {
	query := `
		SELECT ` + movieDetailColumns + `
		FROM movies m
		JOIN genres g ON g.id = m.genre_id
		JOIN audience_types a ON a.id = m.audience_type_id
		ORDER BY m.title, m.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.MovieDetail
	for rows.Next() {
		movie, err := scanMovieDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	return movies, rows.Err()
}

// Delete reports false when no movie had that id. A movie that still has
// showtimes fails with ErrReferenced.
func (r *movieRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM movies WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie", zap.Error(err), zap.Int64("movie_id", id))
		return false, fmt.Errorf("delete movie %d: %w", id, classify(err))
	}

	return tag.RowsAffected() > 0, nil
}

func scanMovieDetail(row pgx.Row) (*entity.MovieDetail, error) {
	var movie entity.MovieDetail
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.DurationMinutes,
		&movie.PriceCents,
		&movie.GenreID,
		&movie.AudienceTypeID,
		&movie.CreatedAt,
		&movie.GenreName,
		&movie.AudienceType,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}
