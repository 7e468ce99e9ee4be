package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	FindAll(ctx context.Context) ([]*entity.Room, error)
	FindByID(ctx context.Context, id int64) (*entity.Room, error)
}

type roomRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRoomRepository(db database.Querier, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

func (r *roomRepository) FindAll(ctx context.Context) ([]*entity.Room, error) {
	query := `SELECT id, name, capacity FROM rooms ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list rooms", zap.Error(err))
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		var room entity.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity); err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, &room)
	}

	return rooms, rows.Err()
}

func (r *roomRepository) FindByID(ctx context.Context, id int64) (*entity.Room, error) {
	query := `SELECT id, name, capacity FROM rooms WHERE id = $1`

	var room entity.Room
	if err := r.db.QueryRow(ctx, query, id).Scan(&room.ID, &room.Name, &room.Capacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find room", zap.Error(err), zap.Int64("room_id", id))
		return nil, fmt.Errorf("find room %d: %w", id, err)
	}

	return &room, nil
}
