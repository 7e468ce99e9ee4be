package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	Revoke(ctx context.Context, id uuid.UUID) error
}

type sessionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSessionRepository(db database.Querier, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, user_id)
		VALUES ($1, $2)
		RETURNING created_at
	`

	if err := r.db.QueryRow(ctx, query, session.ID, session.UserID).Scan(&session.CreatedAt); err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.Int64("user_id", session.UserID),
		)
		return fmt.Errorf("create session for user %d: %w", session.UserID, err)
	}

	return nil
}

// Revoke marks the session closed. Revoking twice is a no-op.
func (r *sessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE sessions
		SET revoked_at = NOW()
		WHERE id = $1 AND revoked_at IS NULL
	`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err), zap.String("session_id", id.String()))
		return fmt.Errorf("revoke session %s: %w", id, err)
	}

	return nil
}
