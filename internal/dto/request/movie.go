package request

// MovieRequest holds the raw operator input for a new movie.
type MovieRequest struct {
	Title           string `validate:"required,max=200"`
	DurationMinutes string `validate:"required,numeric"`
	Price           string `validate:"required"`
	GenreID         string `validate:"required,numeric"`
	AudienceTypeID  string `validate:"required,numeric"`
}
