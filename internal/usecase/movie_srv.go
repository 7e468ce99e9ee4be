package usecase

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/cache"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

const (
	genresCacheKey        = "genres"
	audienceTypesCacheKey = "audience_types"
)

type MovieService interface {
	GetGenres(ctx context.Context) ([]response.LookupResponse, error)
	GetAudienceTypes(ctx context.Context) ([]response.LookupResponse, error)

	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	GetAllMovies(ctx context.Context) ([]response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo    *repository.Repository
	lookups cache.Cache
	log     *zap.Logger
}

func NewMovieService(repo *repository.Repository, lookups cache.Cache, log *zap.Logger) MovieService {
	return &movieService{
		repo:    repo,
		lookups: lookups,
		log:     log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetGenres(ctx context.Context) ([]response.LookupResponse, error) {
	return cache.Remember(ctx, s.lookups, s.log, genresCacheKey, func(ctx context.Context) ([]response.LookupResponse, error) {
		genres, err := s.repo.Genre.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list genres: %w", err)
		}

		result := make([]response.LookupResponse, 0, len(genres))
		for _, g := range genres {
			result = append(result, response.LookupResponse{ID: g.ID, Label: g.Label})
		}
		return result, nil
	})
}

func (s *movieService) GetAudienceTypes(ctx context.Context) ([]response.LookupResponse, error) {
	return cache.Remember(ctx, s.lookups, s.log, audienceTypesCacheKey, func(ctx context.Context) ([]response.LookupResponse, error) {
		types, err := s.repo.AudienceType.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list audience types: %w", err)
		}

		result := make([]response.LookupResponse, 0, len(types))
		for _, a := range types {
			result = append(result, response.LookupResponse{ID: a.ID, Label: a.Label})
		}
		return result, nil
	})
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	duration, err := utils.ParseInt(req.DurationMinutes)
	if err != nil || duration < 1 {
		return nil, invalidField("DurationMinutes", "Must be a whole number of minutes greater than 0")
	}

	priceCents, err := utils.ParseMoney(req.Price)
	if err != nil {
		return nil, invalidField("Price", err.Error())
	}

	genreID, err := utils.ParseID(req.GenreID)
	if err != nil {
		return nil, invalidField("GenreID", err.Error())
	}

	audienceTypeID, err := utils.ParseID(req.AudienceTypeID)
	if err != nil {
		return nil, invalidField("AudienceTypeID", err.Error())
	}

	movie := &entity.Movie{
		Title:           req.Title,
		DurationMinutes: duration,
		PriceCents:      priceCents,
		GenreID:         genreID,
		AudienceTypeID:  audienceTypeID,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return nil, ErrUnknownReference
		}
		return nil, err
	}

	detail, err := s.repo.Movie.FindByID(ctx, movie.ID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, notFound("movie", movie.ID)
	}

	s.log.Info("Movie created", zap.Int64("movie_id", movie.ID), zap.String("title", movie.Title))

	resp := response.MovieToResponse(detail)
	return &resp, nil
}

func (s *movieService) GetAllMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]response.MovieResponse, 0, len(movies))
	for _, movie := range movies {
		result = append(result, response.MovieToResponse(movie))
	}
	return result, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	id, err := utils.ParseID(movieID)
	if err != nil {
		return invalidField("MovieID", err.Error())
	}

	scheduled, err := s.repo.Showtime.CountByMovieID(ctx, id)
	if err != nil {
		return err
	}
	if scheduled > 0 {
		s.log.Warn("Refused to delete scheduled movie", zap.Int64("movie_id", id), zap.Int("showtimes", scheduled))
		return ErrMovieInUse
	}

	deleted, err := s.repo.Movie.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrMovieInUse
		}
		return err
	}
	if !deleted {
		return notFound("movie", id)
	}

	s.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}
