package adaptor

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type CinemaHandler struct {
	service usecase.CinemaService
	console *Console
	log     *zap.Logger
}

func NewCinemaHandler(service usecase.CinemaService, console *Console, log *zap.Logger) *CinemaHandler {
	return &CinemaHandler{
		service: service,
		console: console,
		log:     log.With(zap.String("handler", "cinema")),
	}
}

func (h *CinemaHandler) ListRooms(ctx context.Context) error {
	rooms, err := h.service.GetRooms(ctx)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "list rooms")
	}

	h.console.Title("Rooms")
	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, []string{fmt.Sprint(r.ID), r.Name, fmt.Sprint(r.Capacity)})
	}
	printTable(h.console.out, []column{{"ID", 5}, {"Name", 20}, {"Capacity", 8}}, rows)
	return nil
}

// ListSeats asks for a room and prints its seats.
func (h *CinemaHandler) ListSeats(ctx context.Context) error {
	_, err := h.seatsOfRoom(ctx)
	return err
}

func (h *CinemaHandler) seatsOfRoom(ctx context.Context) ([]response.SeatResponse, error) {
	if err := h.ListRooms(ctx); err != nil {
		return nil, err
	}

	roomID, err := h.console.Prompt(ctx, "Room ID")
	if err != nil {
		return nil, err
	}

	seats, err := h.service.GetSeatsByRoom(ctx, roomID)
	if err != nil {
		return nil, handleServiceError(h.console, h.log, err, "list seats")
	}

	h.console.Title("Seats of room " + roomID)
	printSeats(h.console, seats)
	return seats, nil
}

func printSeats(c *Console, seats []response.SeatResponse) {
	rows := make([][]string, 0, len(seats))
	for _, s := range seats {
		rows = append(rows, []string{fmt.Sprint(s.ID), s.Code})
	}
	printTable(c.out, []column{{"ID", 5}, {"Seat", 6}}, rows)
}

func (h *CinemaHandler) AddSeat(ctx context.Context) error {
	if err := h.ListRooms(ctx); err != nil {
		return err
	}

	var req request.SeatRequest
	var err error
	if req.RoomID, err = h.console.Prompt(ctx, "Room ID"); err != nil {
		return err
	}
	if req.Code, err = h.console.Prompt(ctx, "Seat code (e.g. C1)"); err != nil {
		return err
	}

	seat, err := h.service.AddSeat(ctx, &req)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "add the seat")
	}

	h.console.Printf("Seat %s added with ID %d.\n", seat.Code, seat.ID)
	return nil
}

func (h *CinemaHandler) DeleteSeat(ctx context.Context) error {
	seats, err := h.seatsOfRoom(ctx)
	if err != nil || seats == nil {
		return err
	}

	id, err := h.console.Prompt(ctx, "Seat ID to delete")
	if err != nil {
		return err
	}
	ok, err := h.console.Confirm(ctx, "Delete seat "+id+"?")
	if err != nil || !ok {
		return err
	}

	if err := h.service.DeleteSeat(ctx, id); err != nil {
		return handleServiceError(h.console, h.log, err, "delete the seat")
	}

	h.console.Println("Seat deleted.")
	return nil
}
