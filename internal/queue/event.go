package queue

import "time"

// ReceiptIssuedEvent is published once a checkout commits.
type ReceiptIssuedEvent struct {
	ReceiptID     int64     `json:"receipt_id"`
	Code          string    `json:"code"`
	UserID        int64     `json:"user_id"`
	Username      string    `json:"username"`
	PaymentMethod string    `json:"payment_method"`
	TicketIDs     []int64   `json:"ticket_ids"`
	TotalCents    int64     `json:"total_cents"`
	PurchasedAt   time.Time `json:"purchased_at"`
}
