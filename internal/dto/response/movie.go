package response

import (
	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/utils"
)

// LookupResponse is an entry of a static reference table.
type LookupResponse struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

type MovieResponse struct {
	ID              int64
	Title           string
	DurationMinutes int
	Price           string
	PriceCents      int64
	Genre           string
	AudienceType    string
}

func MovieToResponse(movie *entity.MovieDetail) MovieResponse {
	return MovieResponse{
		ID:              movie.ID,
		Title:           movie.Title,
		DurationMinutes: movie.DurationMinutes,
		Price:           utils.FormatMoney(movie.PriceCents),
		PriceCents:      movie.PriceCents,
		Genre:           movie.GenreName,
		AudienceType:    movie.AudienceType,
	}
}
