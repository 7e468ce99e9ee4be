package adaptor

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	console *Console
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, console *Console, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		console: console,
		log:     log.With(zap.String("handler", "movie")),
	}
}

func (h *MovieHandler) ListMovies(ctx context.Context) error {
	movies, err := h.service.GetAllMovies(ctx)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "list movies")
	}

	h.console.Title("Movies")
	printMovies(h.console, movies)
	return nil
}

func printMovies(c *Console, movies []response.MovieResponse) {
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{
			fmt.Sprint(m.ID),
			m.Title,
			fmt.Sprint(m.DurationMinutes),
			m.Price,
			m.Genre,
			m.AudienceType,
		})
	}
	printTable(c.out, []column{{"ID", 5}, {"Title", 30}, {"Min", 4}, {"Price", 8}, {"Genre", 16}, {"Audience", 14}}, rows)
}

func printLookups(c *Console, title string, items []response.LookupResponse) {
	c.Println(title + ":")
	for _, item := range items {
		c.Printf("  %d) %s\n", item.ID, item.Label)
	}
}

func (h *MovieHandler) AddMovie(ctx context.Context) error {
	genres, err := h.service.GetGenres(ctx)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "load genres")
	}
	audiences, err := h.service.GetAudienceTypes(ctx)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "load audience types")
	}

	h.console.Title("Add movie")

	var req request.MovieRequest
	if req.Title, err = h.console.Prompt(ctx, "Title"); err != nil {
		return err
	}
	if req.DurationMinutes, err = h.console.Prompt(ctx, "Duration (minutes)"); err != nil {
		return err
	}
	if req.Price, err = h.console.Prompt(ctx, "Ticket price (e.g. 8.50)"); err != nil {
		return err
	}
	printLookups(h.console, "Genres", genres)
	if req.GenreID, err = h.console.Prompt(ctx, "Genre ID"); err != nil {
		return err
	}
	printLookups(h.console, "Audience types", audiences)
	if req.AudienceTypeID, err = h.console.Prompt(ctx, "Audience type ID"); err != nil {
		return err
	}

	movie, err := h.service.CreateMovie(ctx, &req)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "add the movie")
	}

	h.console.Printf("Movie %d created: %s (%s).\n", movie.ID, movie.Title, movie.Price)
	return nil
}

func (h *MovieHandler) DeleteMovie(ctx context.Context) error {
	if err := h.ListMovies(ctx); err != nil {
		return err
	}

	id, err := h.console.Prompt(ctx, "Movie ID to delete")
	if err != nil {
		return err
	}
	ok, err := h.console.Confirm(ctx, "Delete movie "+id+"?")
	if err != nil || !ok {
		return err
	}

	if err := h.service.DeleteMovie(ctx, id); err != nil {
		return handleServiceError(h.console, h.log, err, "delete the movie")
	}

	h.console.Println("Movie deleted.")
	return nil
}
