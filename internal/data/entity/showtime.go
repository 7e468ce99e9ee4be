package entity

import "time"

type Showtime struct {
	Base
	MovieID  int64     `db:"movie_id"`
	RoomID   int64     `db:"room_id"`
	ShowDate time.Time `db:"show_date"`
	ShowTime time.Time `db:"show_time"` // only the clock part is meaningful
}

// ShowtimeDetail is a showtime joined with its movie and room.
type ShowtimeDetail struct {
	Showtime
	MovieTitle string `db:"movie_title"`
	PriceCents int64  `db:"price_cents"`
	RoomName   string `db:"room_name"`
}
