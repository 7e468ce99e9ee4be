package entity

type Seat struct {
	ID     int64  `db:"id"`
	RoomID int64  `db:"room_id"`
	Code   string `db:"code"` // A1, A2, B1, etc.
}
