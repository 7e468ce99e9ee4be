package response

import (
	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/utils"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

type RoomResponse struct {
	ID       int64
	Name     string
	Capacity int
}

type SeatResponse struct {
	ID     int64
	RoomID int64
	Code   string
}

type ShowtimeResponse struct {
	ID         int64
	MovieID    int64
	MovieTitle string
	RoomID     int64
	RoomName   string
	Date       string
	Time       string
	Price      string
	PriceCents int64
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{ID: room.ID, Name: room.Name, Capacity: room.Capacity}
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{ID: seat.ID, RoomID: seat.RoomID, Code: seat.Code}
}

func ShowtimeToResponse(showtime *entity.ShowtimeDetail) ShowtimeResponse {
	return ShowtimeResponse{
		ID:         showtime.ID,
		MovieID:    showtime.MovieID,
		MovieTitle: showtime.MovieTitle,
		RoomID:     showtime.RoomID,
		RoomName:   showtime.RoomName,
		Date:       showtime.ShowDate.Format(DateLayout),
		Time:       showtime.ShowTime.Format(ClockLayout),
		Price:      utils.FormatMoney(showtime.PriceCents),
		PriceCents: showtime.PriceCents,
	}
}
