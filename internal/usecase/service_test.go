package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/cache"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	adminID    int64 = 1
	customerID int64 = 2
	otherID    int64 = 3

	sala1     int64 = 1
	sala2     int64 = 2
	seatA1    int64 = 11
	seatA2    int64 = 12
	seatB1    int64 = 21
	movieDune int64 = 1
	showtime  int64 = 10
)

type fixture struct {
	store     *memStore
	svc       *Service
	publisher *fakePublisher

	admin    context.Context
	customer context.Context
	other    context.Context
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithCache(t, cache.NewNoop())
}

// newFixtureWithCache seeds:
// Sala 1 (capacity 20): A1, A2
// Sala 2 (capacity 1): B1
// Dune at 8.50 showing in Sala 1 on 2026-11-02 18:00 (showtime 10)
func newFixtureWithCache(t *testing.T, lookups cache.Cache) *fixture {
	t.Helper()

	store := newMemStore()
	store.users[adminID] = &entity.User{Base: entity.Base{ID: adminID}, Username: "admin1", Role: entity.RoleAdmin}
	store.users[customerID] = &entity.User{Base: entity.Base{ID: customerID}, Username: "juan123", Role: entity.RoleCustomer}
	store.users[otherID] = &entity.User{Base: entity.Base{ID: otherID}, Username: "maria", Role: entity.RoleCustomer}
	store.rooms[sala1] = &entity.Room{ID: sala1, Name: "Sala 1", Capacity: 20}
	store.rooms[sala2] = &entity.Room{ID: sala2, Name: "Sala 2", Capacity: 1}
	store.seats[seatA1] = &entity.Seat{ID: seatA1, RoomID: sala1, Code: "A1"}
	store.seats[seatA2] = &entity.Seat{ID: seatA2, RoomID: sala1, Code: "A2"}
	store.seats[seatB1] = &entity.Seat{ID: seatB1, RoomID: sala2, Code: "B1"}
	store.movies[movieDune] = &entity.Movie{
		Base: entity.Base{ID: movieDune}, Title: "Dune", DurationMinutes: 155, PriceCents: 850, GenreID: 1, AudienceTypeID: 2,
	}
	store.showtimes[showtime] = &entity.Showtime{
		Base:     entity.Base{ID: showtime},
		MovieID:  movieDune,
		RoomID:   sala1,
		ShowDate: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		ShowTime: time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC),
	}

	publisher := &fakePublisher{}
	config := &utils.Config{Security: utils.SecurityConfig{BcryptCost: 4}}
	svc := NewService(store.repository(), lookups, publisher, config, zap.NewNop())

	return &fixture{
		store:     store,
		svc:       svc,
		publisher: publisher,
		admin:     sessionContext(adminID, "admin1", entity.RoleAdmin),
		customer:  sessionContext(customerID, "juan123", entity.RoleCustomer),
		other:     sessionContext(otherID, "maria", entity.RoleCustomer),
	}
}

func sessionContext(userID int64, username string, role entity.UserRole) context.Context {
	return utils.SetSessionContext(context.Background(), &utils.Session{
		ID:       uuid.New(),
		UserID:   userID,
		Username: username,
		Role:     string(role),
	})
}
