package entity

type Ticket struct {
	Base
	ShowtimeID int64 `db:"showtime_id"`
	UserID     int64 `db:"user_id"`
	SeatID     int64 `db:"seat_id"`
	PriceCents int64 `db:"price_cents"`
}
