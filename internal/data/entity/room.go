package entity

type Room struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Capacity int    `db:"capacity"`
}
