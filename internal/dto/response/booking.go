package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/utils"
)

type TicketResponse struct {
	ID         int64
	ShowtimeID int64
	SeatID     int64
	SeatCode   string
	Price      string
	PriceCents int64
	Message    string
}

type ReceiptLineResponse struct {
	TicketID   int64
	MovieTitle string
	Date       string
	Time       string
	RoomName   string
	SeatCode   string
	Price      string
}

type ReceiptResponse struct {
	ID            int64
	Code          string
	Buyer         string
	PaymentMethod string
	PurchasedAt   time.Time
	Total         string
	TotalCents    int64
	Tickets       []ReceiptLineResponse
}

// ReceiptSummaryResponse is a receipt without its ticket lines.
type ReceiptSummaryResponse struct {
	ID            int64
	Code          string
	PaymentMethod string
	PurchasedAt   time.Time
	Total         string
}

func ReceiptToResponse(header *entity.ReceiptHeader, lines []*entity.ReceiptLine) ReceiptResponse {
	resp := ReceiptResponse{
		ID:            header.ID,
		Code:          header.Code,
		Buyer:         header.Username,
		PaymentMethod: header.PaymentMethod,
		PurchasedAt:   header.PurchasedAt,
		Total:         utils.FormatMoney(header.TotalCents),
		TotalCents:    header.TotalCents,
		Tickets:       make([]ReceiptLineResponse, 0, len(lines)),
	}

	for _, line := range lines {
		resp.Tickets = append(resp.Tickets, ReceiptLineResponse{
			TicketID:   line.TicketID,
			MovieTitle: line.MovieTitle,
			Date:       line.ShowDate.Format(DateLayout),
			Time:       line.ShowTime.Format(ClockLayout),
			RoomName:   line.RoomName,
			SeatCode:   line.SeatCode,
			Price:      utils.FormatMoney(line.PriceCents),
		})
	}

	return resp
}

func ReceiptToSummary(header *entity.ReceiptHeader) ReceiptSummaryResponse {
	return ReceiptSummaryResponse{
		ID:            header.ID,
		Code:          header.Code,
		PaymentMethod: header.PaymentMethod,
		PurchasedAt:   header.PurchasedAt,
		Total:         utils.FormatMoney(header.TotalCents),
	}
}
