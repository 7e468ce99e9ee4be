package request

type PurchaseRequest struct {
	ShowtimeID string `validate:"required,numeric"`
	SeatID     string `validate:"required,numeric"`
}

type CheckoutRequest struct {
	TicketIDs       []int64 `validate:"required,min=1,dive,gt=0"`
	PaymentMethodID string  `validate:"required,numeric"`
}
