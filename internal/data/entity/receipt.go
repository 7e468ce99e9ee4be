package entity

import "time"

type Receipt struct {
	ID              int64     `db:"id"`
	Code            string    `db:"code"`
	UserID          int64     `db:"user_id"`
	PaymentMethodID int64     `db:"payment_method_id"`
	PurchasedAt     time.Time `db:"purchased_at"`
	TotalCents      int64     `db:"total_cents"`
}

// ReceiptHeader is a receipt joined with its buyer and payment method.
type ReceiptHeader struct {
	Receipt
	Username      string `db:"username"`
	PaymentMethod string `db:"payment_method"`
}

// ReceiptLine is one ticket of a receipt with everything needed to print it.
type ReceiptLine struct {
	TicketID   int64     `db:"ticket_id"`
	MovieTitle string    `db:"movie_title"`
	ShowDate   time.Time `db:"show_date"`
	ShowTime   time.Time `db:"show_time"`
	RoomName   string    `db:"room_name"`
	SeatCode   string    `db:"seat_code"`
	PriceCents int64     `db:"price_cents"`
}
