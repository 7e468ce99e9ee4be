package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	Genre         GenreRepository
	AudienceType  AudienceTypeRepository
	PaymentMethod PaymentMethodRepository
	Movie         MovieRepository
	Room          RoomRepository
	Seat          SeatRepository
	Showtime      ShowtimeRepository
	Ticket        TicketRepository
	Receipt       ReceiptRepository

	Tx Transactor
}

// Transactor runs fn with a Repository bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *Repository) error) error
}

func NewRepository(db database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Genre:         NewGenreRepository(db, log),
		AudienceType:  NewAudienceTypeRepository(db, log),
		PaymentMethod: NewPaymentMethodRepository(db, log),
		Movie:         NewMovieRepository(db, log),
		Room:          NewRoomRepository(db, log),
		Seat:          NewSeatRepository(db, log),
		Showtime:      NewShowtimeRepository(db, log),
		Ticket:        NewTicketRepository(db, log),
		Receipt:       NewReceiptRepository(db, log),
		Tx:            &pgxTransactor{db: db, log: log},
	}
}

type pgxTransactor struct {
	db  database.Querier
	log *zap.Logger
}

func (t *pgxTransactor) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := fn(NewRepository(tx, t.log)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true

	return nil
}
