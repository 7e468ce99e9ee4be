package adaptor

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service   usecase.BookingService
	showtimes usecase.ShowtimeService
	console   *Console
	log       *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, showtimes usecase.ShowtimeService, console *Console, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:   service,
		showtimes: showtimes,
		console:   console,
		log:       log.With(zap.String("handler", "booking")),
	}
}

// BuyTickets runs the checkout loop: seats are bought one at a time for a
// single showtime and then billed together on one receipt.
func (h *BookingHandler) BuyTickets(ctx context.Context) error {
	showtimes, err := h.showtimes.GetShowtimes(ctx)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "load the billboard")
	}
	h.console.Title("Buy tickets")
	printShowtimes(h.console, showtimes)
	if len(showtimes) == 0 {
		return nil
	}

	showtimeID, err := h.console.Prompt(ctx, "Showtime ID")
	if err != nil {
		return err
	}
	showtime, err := h.showtimes.GetShowtime(ctx, showtimeID)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "load the showtime")
	}
	h.console.Printf("%s | %s | %s %s | %s per seat\n",
		showtime.MovieTitle, showtime.RoomName, showtime.Date, showtime.Time, showtime.Price)

	var ticketIDs []int64
	err = h.pickSeats(ctx, showtime, &ticketIDs)
	if err == nil && len(ticketIDs) > 0 {
		err = h.checkout(ctx, ticketIDs)
	}
	if err != nil && isTerminal(err) && len(ticketIDs) > 0 {
		h.release(context.WithoutCancel(ctx), ticketIDs)
	}
	return err
}

func (h *BookingHandler) pickSeats(ctx context.Context, showtime *response.ShowtimeResponse, ticketIDs *[]int64) error {
	showtimeID := fmt.Sprint(showtime.ID)
	for {
		seats, err := h.service.GetAvailableSeats(ctx, showtimeID)
		if err != nil {
			return handleServiceError(h.console, h.log, err, "list available seats")
		}
		if len(seats) == 0 {
			h.console.Println("No seats left for this showtime.")
			break
		}

		h.console.Println("Available seats:")
		printSeats(h.console, seats)

		seatID, err := h.console.Prompt(ctx, "Seat ID")
		if err != nil {
			return err
		}
		ok, err := h.console.Confirm(ctx, fmt.Sprintf("Buy seat %s for %s?", seatID, showtime.Price))
		if err != nil {
			return err
		}
		if ok {
			ticket, err := h.service.PurchaseTicket(ctx, &request.PurchaseRequest{ShowtimeID: showtimeID, SeatID: seatID})
			if err != nil {
				if err := handleServiceError(h.console, h.log, err, "buy the ticket"); err != nil {
					return err
				}
			} else {
				*ticketIDs = append(*ticketIDs, ticket.ID)
				h.console.Println(ticket.Message)
			}
		}

		more, err := h.console.Confirm(ctx, "Buy another seat?")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	if len(*ticketIDs) == 0 {
		h.console.Println("No tickets were bought; nothing to pay.")
	}
	return nil
}

func (h *BookingHandler) checkout(ctx context.Context, ticketIDs []int64) error {
	methods, err := h.service.GetPaymentMethods(ctx)
	if err != nil {
		if err := handleServiceError(h.console, h.log, err, "load payment methods"); err != nil {
			return err
		}
		h.release(ctx, ticketIDs)
		return nil
	}

	h.console.Printf("%d ticket(s) reserved.\n", len(ticketIDs))
	printLookups(h.console, "Payment methods", methods)

	for {
		methodID, err := h.console.Prompt(ctx, "Payment method ID (blank to cancel)")
		if err != nil {
			return err
		}
		if methodID == "" {
			h.release(ctx, ticketIDs)
			return nil
		}
		if !listed(methods, methodID) {
			h.console.Println("Choose one of the listed payment methods.")
			continue
		}

		receipt, err := h.service.Checkout(ctx, &request.CheckoutRequest{TicketIDs: ticketIDs, PaymentMethodID: methodID})
		if err == nil {
			printReceipt(h.console, receipt)
			return nil
		}
		if err := handleServiceError(h.console, h.log, err, "complete the purchase"); err != nil {
			return err
		}

		h.release(ctx, ticketIDs)
		return nil
	}
}

func listed(items []response.LookupResponse, id string) bool {
	for _, item := range items {
		if fmt.Sprint(item.ID) == id {
			return true
		}
	}
	return false
}

func (h *BookingHandler) release(ctx context.Context, ticketIDs []int64) {
	released, err := h.service.ReleaseTickets(ctx, ticketIDs)
	if err != nil {
		h.log.Error("Failed to release tickets", zap.Error(err), zap.Int64s("ticket_ids", ticketIDs))
		h.console.Println("Could not release the reserved seats.")
		return
	}
	h.console.Printf("Purchase cancelled; %d seat(s) released.\n", released)
}

func (h *BookingHandler) MyReceipts(ctx context.Context) error {
	receipts, err := h.service.GetMyReceipts(ctx)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "list receipts")
	}

	h.console.Title("My receipts")
	rows := make([][]string, 0, len(receipts))
	for _, r := range receipts {
		rows = append(rows, []string{
			fmt.Sprint(r.ID),
			r.Code,
			r.PurchasedAt.Format("2006-01-02 15:04"),
			r.PaymentMethod,
			r.Total,
		})
	}
	printTable(h.console.out, []column{{"ID", 5}, {"Code", 26}, {"Purchased", 16}, {"Payment", 14}, {"Total", 10}}, rows)
	return nil
}

func (h *BookingHandler) ViewReceipt(ctx context.Context) error {
	id, err := h.console.Prompt(ctx, "Receipt ID")
	if err != nil {
		return err
	}

	receipt, err := h.service.GetReceipt(ctx, id)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "load the receipt")
	}

	printReceipt(h.console, receipt)
	return nil
}

func printReceipt(c *Console, receipt *response.ReceiptResponse) {
	c.Title("Receipt " + receipt.Code)
	c.Printf("Buyer:     %s\n", receipt.Buyer)
	c.Printf("Payment:   %s\n", receipt.PaymentMethod)
	c.Printf("Purchased: %s\n\n", receipt.PurchasedAt.Format("2006-01-02 15:04:05"))

	rows := make([][]string, 0, len(receipt.Tickets))
	for _, t := range receipt.Tickets {
		rows = append(rows, []string{fmt.Sprint(t.TicketID), t.MovieTitle, t.Date, t.Time, t.RoomName, t.SeatCode, t.Price})
	}
	printTable(c.out, []column{{"Ticket", 6}, {"Movie", 30}, {"Date", 10}, {"Time", 5}, {"Room", 12}, {"Seat", 6}, {"Price", 8}}, rows)
	c.Printf("\nTotal: %s\n", receipt.Total)
}
