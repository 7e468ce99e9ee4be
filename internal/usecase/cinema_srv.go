package usecase

import (
	"context"
	"errors"
	"strings"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// CinemaService covers rooms and their seats.
type CinemaService interface {
	GetRooms(ctx context.Context) ([]response.RoomResponse, error)
	GetSeatsByRoom(ctx context.Context, roomID string) ([]response.SeatResponse, error)
	AddSeat(ctx context.Context, req *request.SeatRequest) (*response.SeatResponse, error)
	DeleteSeat(ctx context.Context, seatID string) error
}

type cinemaService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCinemaService(repo *repository.Repository, log *zap.Logger) CinemaService {
	return &cinemaService{
		repo: repo,
		log:  log.With(zap.String("service", "cinema")),
	}
}

func (s *cinemaService) GetRooms(ctx context.Context) ([]response.RoomResponse, error) {
	rooms, err := s.repo.Room.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]response.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, response.RoomToResponse(room))
	}
	return result, nil
}

func (s *cinemaService) GetSeatsByRoom(ctx context.Context, roomID string) ([]response.SeatResponse, error) {
	id, err := utils.ParseID(roomID)
	if err != nil {
		return nil, invalidField("RoomID", err.Error())
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, notFound("room", id)
	}

	seats, err := s.repo.Seat.FindByRoomID(ctx, id)
	if err != nil {
		return nil, err
	}

	return seatsToResponse(seats), nil
}

func (s *cinemaService) AddSeat(ctx context.Context, req *request.SeatRequest) (*response.SeatResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add seat validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	roomID, err := utils.ParseID(req.RoomID)
	if err != nil {
		return nil, invalidField("RoomID", err.Error())
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, notFound("room", roomID)
	}

	count, err := s.repo.Seat.CountByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if count >= room.Capacity {
		s.log.Warn("Room is full", zap.Int64("room_id", roomID), zap.Int("capacity", room.Capacity))
		return nil, ErrRoomFull
	}

	seat := &entity.Seat{
		RoomID: roomID,
		Code:   strings.ToUpper(req.Code),
	}
	if err := s.repo.Seat.Create(ctx, seat); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateSeat
		}
		return nil, err
	}

	s.log.Info("Seat added", zap.Int64("seat_id", seat.ID), zap.Int64("room_id", roomID), zap.String("code", seat.Code))

	resp := response.SeatToResponse(seat)
	return &resp, nil
}

func (s *cinemaService) DeleteSeat(ctx context.Context, seatID string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	id, err := utils.ParseID(seatID)
	if err != nil {
		return invalidField("SeatID", err.Error())
	}

	tickets, err := s.repo.Ticket.CountBySeatID(ctx, id)
	if err != nil {
		return err
	}
	if tickets > 0 {
		s.log.Warn("Refused to delete seat with tickets", zap.Int64("seat_id", id), zap.Int("tickets", tickets))
		return ErrSeatInUse
	}

	deleted, err := s.repo.Seat.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrSeatInUse
		}
		return err
	}
	if !deleted {
		return notFound("seat", id)
	}

	s.log.Info("Seat deleted", zap.Int64("seat_id", id))
	return nil
}

func seatsToResponse(seats []*entity.Seat) []response.SeatResponse {
	result := make([]response.SeatResponse, 0, len(seats))
	for _, seat := range seats {
		result = append(result, response.SeatToResponse(seat))
	}
	return result
}
