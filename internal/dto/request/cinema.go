package request

type SeatRequest struct {
	RoomID string `validate:"required,numeric"`
	Code   string `validate:"required,alphanum,max=10"`
}

type ShowtimeRequest struct {
	MovieID string `validate:"required,numeric"`
	RoomID  string `validate:"required,numeric"`
	Date    string `validate:"required,datetime=2006-01-02"`
	Time    string `validate:"required,datetime=15:04"`
}
