package adaptor

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
)

// newTestConsole feeds script to the console and collects its output.
func newTestConsole(script ...string) (*Console, *strings.Builder) {
	out := &strings.Builder{}
	input := ""
	if len(script) > 0 {
		input = strings.Join(script, "\n") + "\n"
	}
	return NewConsole(strings.NewReader(input), out), out
}

// newOpenConsole is like newTestConsole but input never ends, so a pending
// prompt only returns when its context is cancelled.
func newOpenConsole(script ...string) (*Console, *strings.Builder) {
	out := &strings.Builder{}
	pr, pw := io.Pipe()
	if len(script) > 0 {
		go func() {
			_, _ = io.WriteString(pw, strings.Join(script, "\n")+"\n")
		}()
	}
	return NewConsole(pr, out), out
}

var duneShowtime = response.ShowtimeResponse{
	ID:         10,
	MovieID:    1,
	MovieTitle: "Dune",
	RoomID:     1,
	RoomName:   "Sala 1",
	Date:       "2026-11-02",
	Time:       "18:00",
	Price:      "8.50",
	PriceCents: 850,
}

type stubShowtimes struct {
	usecase.ShowtimeService
}

func (stubShowtimes) GetShowtimes(context.Context) ([]response.ShowtimeResponse, error) {
	return []response.ShowtimeResponse{duneShowtime}, nil
}

func (stubShowtimes) GetShowtime(_ context.Context, id string) (*response.ShowtimeResponse, error) {
	if id != "10" {
		return nil, usecase.ErrNotFound
	}
	s := duneShowtime
	return &s, nil
}

// stubBooking sells seats of showtime 10 at 8.50 each.
type stubBooking struct {
	usecase.BookingService

	available  map[int64]string
	nextTicket int64
	checkouts  []request.CheckoutRequest
	released   [][]int64
	releaseCtx context.Context
}

func newStubBooking() *stubBooking {
	return &stubBooking{available: map[int64]string{11: "A1", 12: "A2"}}
}

func (s *stubBooking) GetAvailableSeats(context.Context, string) ([]response.SeatResponse, error) {
	seats := make([]response.SeatResponse, 0, len(s.available))
	for id, code := range s.available {
		seats = append(seats, response.SeatResponse{ID: id, RoomID: 1, Code: code})
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i].ID < seats[j].ID })
	return seats, nil
}

func (s *stubBooking) PurchaseTicket(_ context.Context, req *request.PurchaseRequest) (*response.TicketResponse, error) {
	seatID, err := strconv.ParseInt(req.SeatID, 10, 64)
	if err != nil {
		return nil, &usecase.ValidationError{Fields: map[string]string{"SeatID": "Must be a number"}}
	}
	code, ok := s.available[seatID]
	if !ok {
		return nil, usecase.ErrSeatOccupied
	}
	delete(s.available, seatID)

	s.nextTicket++
	return &response.TicketResponse{
		ID:         s.nextTicket,
		ShowtimeID: 10,
		SeatID:     seatID,
		SeatCode:   code,
		Price:      "8.50",
		PriceCents: 850,
		Message:    "Ticket " + strconv.FormatInt(s.nextTicket, 10) + " purchased for seat " + code,
	}, nil
}

func (s *stubBooking) ReleaseTickets(ctx context.Context, ids []int64) (int64, error) {
	s.released = append(s.released, ids)
	s.releaseCtx = ctx
	return int64(len(ids)), nil
}

func (s *stubBooking) GetPaymentMethods(context.Context) ([]response.LookupResponse, error) {
	return []response.LookupResponse{{ID: 1, Label: "Cash"}, {ID: 2, Label: "Credit card"}}, nil
}

func (s *stubBooking) Checkout(_ context.Context, req *request.CheckoutRequest) (*response.ReceiptResponse, error) {
	s.checkouts = append(s.checkouts, *req)

	total := int64(850 * len(req.TicketIDs))
	receipt := &response.ReceiptResponse{
		ID:            1,
		Code:          "RCPT-20261019-120000-0001",
		Buyer:         "juan123",
		PaymentMethod: "Cash",
		PurchasedAt:   time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		Total:         utils.FormatMoney(total),
		TotalCents:    total,
	}
	for _, id := range req.TicketIDs {
		receipt.Tickets = append(receipt.Tickets, response.ReceiptLineResponse{
			TicketID:   id,
			MovieTitle: "Dune",
			Date:       "2026-11-02",
			Time:       "18:00",
			RoomName:   "Sala 1",
			Price:      "8.50",
		})
	}
	return receipt, nil
}

type stubAuth struct {
	usecase.AuthService

	logouts        int
	logoutSessions []*utils.Session
	logoutErr      error
}

func (s *stubAuth) Login(_ context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	switch {
	case req.Username == "juan123" && req.Password == "pass123":
		return &response.AuthResponse{SessionID: uuid.NewString(), UserID: 2, Username: "juan123", Role: entity.RoleCustomer}, nil
	case req.Username == "admin1" && req.Password == "adminpass":
		return &response.AuthResponse{SessionID: uuid.NewString(), UserID: 1, Username: "admin1", Role: entity.RoleAdmin}, nil
	}
	return nil, usecase.ErrInvalidCredentials
}

func (s *stubAuth) Logout(ctx context.Context) error {
	s.logouts++
	session, _ := utils.GetSessionFromContext(ctx)
	s.logoutSessions = append(s.logoutSessions, session)
	return s.logoutErr
}
