package usecase

import (
	"context"
	"errors"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type ShowtimeService interface {
	CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	GetShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error)
	GetShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, showtimeID string) error
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	// 1. Validate and parse
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	movieID, err := utils.ParseID(req.MovieID)
	if err != nil {
		return nil, invalidField("MovieID", err.Error())
	}
	roomID, err := utils.ParseID(req.RoomID)
	if err != nil {
		return nil, invalidField("RoomID", err.Error())
	}
	date, err := time.Parse(response.DateLayout, req.Date)
	if err != nil {
		return nil, invalidField("Date", "Must match the format "+response.DateLayout)
	}
	clock, err := time.Parse(response.ClockLayout, req.Time)
	if err != nil {
		return nil, invalidField("Time", "Must match the format "+response.ClockLayout)
	}

	// 2. Referenced rows must exist
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, notFound("movie", movieID)
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, notFound("room", roomID)
	}

	// 3. One showtime per room slot
	taken, err := s.repo.Showtime.ExistsSlot(ctx, roomID, date, clock)
	if err != nil {
		return nil, err
	}
	if taken {
		s.log.Warn("Showtime slot taken",
			zap.Int64("room_id", roomID),
			zap.String("date", req.Date),
			zap.String("time", req.Time))
		return nil, ErrSlotTaken
	}

	showtime := &entity.Showtime{
		MovieID:  movieID,
		RoomID:   roomID,
		ShowDate: date,
		ShowTime: clock,
	}
	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			s.log.Info("Showtime slot taken concurrently",
				zap.Int64("room_id", roomID),
				zap.String("constraint", repository.ConstraintName(err)))
			return nil, ErrSlotTaken
		case errors.Is(err, repository.ErrReferenced):
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.Int64("showtime_id", showtime.ID),
		zap.Int64("movie_id", movieID),
		zap.Int64("room_id", roomID))

	resp := response.ShowtimeToResponse(&entity.ShowtimeDetail{
		Showtime:   *showtime,
		MovieTitle: movie.Title,
		PriceCents: movie.PriceCents,
		RoomName:   room.Name,
	})
	return &resp, nil
}

// GetShowtimes returns the billboard ordered by date and time.
func (s *showtimeService) GetShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error) {
	showtimes, err := s.repo.Showtime.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]response.ShowtimeResponse, 0, len(showtimes))
	for _, showtime := range showtimes {
		result = append(result, response.ShowtimeToResponse(showtime))
	}
	return result, nil
}

func (s *showtimeService) GetShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	id, err := utils.ParseID(showtimeID)
	if err != nil {
		return nil, invalidField("ShowtimeID", err.Error())
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, notFound("showtime", id)
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, showtimeID string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	id, err := utils.ParseID(showtimeID)
	if err != nil {
		return invalidField("ShowtimeID", err.Error())
	}

	tickets, err := s.repo.Ticket.CountByShowtimeID(ctx, id)
	if err != nil {
		return err
	}
	if tickets > 0 {
		s.log.Warn("Refused to delete showtime with tickets", zap.Int64("showtime_id", id), zap.Int("tickets", tickets))
		return ErrShowtimeInUse
	}

	deleted, err := s.repo.Showtime.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrShowtimeInUse
		}
		return err
	}
	if !deleted {
		return notFound("showtime", id)
	}

	s.log.Info("Showtime deleted", zap.Int64("showtime_id", id))
	return nil
}
