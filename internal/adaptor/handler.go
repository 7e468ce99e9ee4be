package adaptor

import (
	"cinema-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Movie    *MovieHandler
	Cinema   *CinemaHandler
	Showtime *ShowtimeHandler
	Booking  *BookingHandler
}

func NewHandler(service *usecase.Service, console *Console, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, console, log),
		Movie:    NewMovieHandler(service.Movie, console, log),
		Cinema:   NewCinemaHandler(service.Cinema, console, log),
		Showtime: NewShowtimeHandler(service.Showtime, service.Movie, service.Cinema, console, log),
		Booking:  NewBookingHandler(service.Booking, service.Showtime, console, log),
	}
}
