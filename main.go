package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cinema-ticketing/cmd"
	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/internal/wire"
	"cinema-ticketing/pkg/cache"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)
	lookups, closeCache := initCache(ctx, config, logger)
	defer closeCache()
	publisher := initPublisher(config, logger)
	defer publisher.Close()

	app := wire.Wiring(wire.Deps{
		DB:        db,
		Repo:      repos,
		Lookups:   lookups,
		Publisher: publisher,
		In:        os.Stdin,
		Out:       os.Stdout,
	}, config, logger)

	if config.App.SeedDemo {
		seedDemoUsers(ctx, app.Service.Auth, logger)
	}

	if config.App.HealthAddr != "" {
		go func() {
			if err := cmd.HealthServer(ctx, app.Router, config.App.HealthAddr, logger); err != nil {
				logger.Error("Health endpoint failed", zap.Error(err))
			}
		}()
	}

	if err := app.Menu.Run(ctx); err != nil {
		logger.Error("Menu stopped", zap.Error(err))
	}
	logger.Info("Application stopped")
}

func initCache(ctx context.Context, config *utils.Config, logger *zap.Logger) (cache.Cache, func()) {
	if config.Redis.Addr == "" {
		return cache.NewNoop(), func() {}
	}

	lookups, client, err := cache.NewRedisCache(ctx, config.Redis, config.App.Name, logger)
	if err != nil {
		logger.Warn("Redis unavailable, lookup cache disabled", zap.Error(err))
		return cache.NewNoop(), func() {}
	}
	return lookups, func() { _ = client.Close() }
}

func initPublisher(config *utils.Config, logger *zap.Logger) queue.Publisher {
	if config.Queue.URL == "" {
		return queue.NewNoopPublisher()
	}

	publisher, err := queue.NewPublisher(config.Queue.URL, config.Queue.ReceiptQueue, logger)
	if err != nil {
		logger.Warn("Broker unavailable, receipt events disabled", zap.Error(err))
		return queue.NewNoopPublisher()
	}
	return publisher
}

func seedDemoUsers(ctx context.Context, auth usecase.AuthService, logger *zap.Logger) {
	demo := []struct {
		username, password string
		role               entity.UserRole
	}{
		{"admin1", "adminpass", entity.RoleAdmin},
		{"juan123", "pass123", entity.RoleCustomer},
	}

	for _, u := range demo {
		created, err := auth.EnsureUser(ctx, u.username, u.password, u.role)
		if err != nil {
			logger.Error("Failed to seed user", zap.String("username", u.username), zap.Error(err))
			continue
		}
		if created {
			logger.Info("Seeded demo user", zap.String("username", u.username), zap.String("role", string(u.role)))
		}
	}
}
