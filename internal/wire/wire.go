package wire

import (
	"context"
	"io"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/cache"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pinger is the part of the database pool the health endpoint needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds everything main needs after wiring.
type App struct {
	Service *usecase.Service
	Menu    *adaptor.Menu
	Router  *chi.Mux
}

// Deps are the infrastructure pieces built by main.
type Deps struct {
	DB        Pinger
	Repo      *repository.Repository
	Lookups   cache.Cache
	Publisher queue.Publisher
	In        io.Reader
	Out       io.Writer
}

func Wiring(deps Deps, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(deps.Repo, deps.Lookups, deps.Publisher, config, logger)
	console := adaptor.NewConsole(deps.In, deps.Out)
	handler := adaptor.NewHandler(service, console, logger)

	return &App{
		Service: service,
		Menu:    setupMenu(handler, console, logger),
		Router:  setupRouter(deps.DB, logger),
	}
}

type menuSet struct {
	public   []adaptor.MenuItem
	customer []adaptor.MenuItem
	admin    []adaptor.MenuItem
}

func setupMenu(handler *adaptor.Handler, console *adaptor.Console, logger *zap.Logger) *adaptor.Menu {
	var m menuSet

	// order of calls is the order of entries in each menu
	wireMovie(&m, handler.Movie)
	wireCinema(&m, handler.Cinema)
	wireShowtime(&m, handler.Showtime)
	wireBooking(&m, handler.Booking)
	wireAuth(&m, handler.Auth)

	return adaptor.NewMenu(console, handler.Auth, m.public, m.customer, m.admin, logger)
}
