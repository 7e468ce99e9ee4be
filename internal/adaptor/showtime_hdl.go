package adaptor

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	movies  usecase.MovieService
	cinema  usecase.CinemaService
	console *Console
	log     *zap.Logger
}

func NewShowtimeHandler(
	service usecase.ShowtimeService,
	movies usecase.MovieService,
	cinema usecase.CinemaService,
	console *Console,
	log *zap.Logger,
) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		movies:  movies,
		cinema:  cinema,
		console: console,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// Billboard prints every showtime ordered by date and time.
func (h *ShowtimeHandler) Billboard(ctx context.Context) error {
	showtimes, err := h.service.GetShowtimes(ctx)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "load the billboard")
	}

	h.console.Title("Billboard")
	printShowtimes(h.console, showtimes)
	return nil
}

func printShowtimes(c *Console, showtimes []response.ShowtimeResponse) {
	rows := make([][]string, 0, len(showtimes))
	for _, s := range showtimes {
		rows = append(rows, []string{fmt.Sprint(s.ID), s.Date, s.Time, s.MovieTitle, s.RoomName, s.Price})
	}
	printTable(c.out, []column{{"ID", 5}, {"Date", 10}, {"Time", 5}, {"Movie", 30}, {"Room", 12}, {"Price", 8}}, rows)
}

func (h *ShowtimeHandler) AddShowtime(ctx context.Context) error {
	movies, err := h.movies.GetAllMovies(ctx)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "list movies")
	}
	rooms, err := h.cinema.GetRooms(ctx)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "list rooms")
	}

	h.console.Title("Add showtime")
	printMovies(h.console, movies)

	var req request.ShowtimeRequest
	if req.MovieID, err = h.console.Prompt(ctx, "Movie ID"); err != nil {
		return err
	}
	for _, r := range rooms {
		h.console.Printf("  %d) %s\n", r.ID, r.Name)
	}
	if req.RoomID, err = h.console.Prompt(ctx, "Room ID"); err != nil {
		return err
	}
	if req.Date, err = h.console.Prompt(ctx, "Date (YYYY-MM-DD)"); err != nil {
		return err
	}
	if req.Time, err = h.console.Prompt(ctx, "Time (HH:MM)"); err != nil {
		return err
	}

	showtime, err := h.service.CreateShowtime(ctx, &req)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "add the showtime")
	}

	h.console.Printf("Showtime %d created: %s in %s on %s at %s.\n",
		showtime.ID, showtime.MovieTitle, showtime.RoomName, showtime.Date, showtime.Time)
	return nil
}

func (h *ShowtimeHandler) DeleteShowtime(ctx context.Context) error {
	if err := h.Billboard(ctx); err != nil {
		return err
	}

	id, err := h.console.Prompt(ctx, "Showtime ID to delete")
	if err != nil {
		return err
	}
	ok, err := h.console.Confirm(ctx, "Delete showtime "+id+"?")
	if err != nil || !ok {
		return err
	}

	if err := h.service.DeleteShowtime(ctx, id); err != nil {
		return handleServiceError(h.console, h.log, err, "delete the showtime")
	}

	h.console.Println("Showtime deleted.")
	return nil
}
