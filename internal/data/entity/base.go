package entity

import "time"

type Base struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// Lookup is the shape shared by the static reference tables.
type Lookup struct {
	ID    int64  `db:"id"`
	Label string `db:"label"`
}
