package usecase

import (
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/pkg/cache"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Movie    MovieService
	Cinema   CinemaService
	Showtime ShowtimeService
	Booking  BookingService
}

func NewService(repo *repository.Repository, lookups cache.Cache, publisher queue.Publisher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		Movie:    NewMovieService(repo, lookups, log),
		Cinema:   NewCinemaService(repo, log),
		Showtime: NewShowtimeService(repo, log),
		Booking:  NewBookingService(repo, lookups, publisher, log),
	}
}
