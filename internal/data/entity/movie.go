package entity

type Movie struct {
	Base
	Title           string `db:"title"`
	DurationMinutes int    `db:"duration_minutes"`
	PriceCents      int64  `db:"price_cents"`
	GenreID         int64  `db:"genre_id"`
	AudienceTypeID  int64  `db:"audience_type_id"`
}

// MovieDetail is a movie joined with its lookup labels.
type MovieDetail struct {
	Movie
	GenreName    string `db:"genre_name"`
	AudienceType string `db:"audience_type"`
}
