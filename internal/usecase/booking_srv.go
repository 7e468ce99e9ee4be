package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/pkg/cache"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

const paymentMethodsCacheKey = "payment_methods"

type BookingService interface {
	GetAvailableSeats(ctx context.Context, showtimeID string) ([]response.SeatResponse, error)
	PurchaseTicket(ctx context.Context, req *request.PurchaseRequest) (*response.TicketResponse, error)

	// ReleaseTickets deletes the session user's tickets that were never
	// billed, freeing their seats. It returns how many were released.
	ReleaseTickets(ctx context.Context, ticketIDs []int64) (int64, error)

	GetPaymentMethods(ctx context.Context) ([]response.LookupResponse, error)
	Checkout(ctx context.Context, req *request.CheckoutRequest) (*response.ReceiptResponse, error)

	GetReceipt(ctx context.Context, receiptID string) (*response.ReceiptResponse, error)
	GetMyReceipts(ctx context.Context) ([]response.ReceiptSummaryResponse, error)
}

type bookingService struct {
	repo      *repository.Repository // ticket, receipt, seat, showtime, payment method
	lookups   cache.Cache
	publisher queue.Publisher
	now       func() time.Time
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, lookups cache.Cache, publisher queue.Publisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		lookups:   lookups,
		publisher: publisher,
		now:       time.Now,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetAvailableSeats(ctx context.Context, showtimeID string) ([]response.SeatResponse, error) {
	id, err := utils.ParseID(showtimeID)
	if err != nil {
		return nil, invalidField("ShowtimeID", err.Error())
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, notFound("showtime", id)
	}

	seats, err := s.repo.Seat.FindAvailableByShowtime(ctx, id)
	if err != nil {
		return nil, err
	}

	return seatsToResponse(seats), nil
}

func (s *bookingService) PurchaseTicket(ctx context.Context, req *request.PurchaseRequest) (*response.TicketResponse, error) {
	session, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Purchase validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	showtimeID, err := utils.ParseID(req.ShowtimeID)
	if err != nil {
		return nil, invalidField("ShowtimeID", err.Error())
	}
	seatID, err := utils.ParseID(req.SeatID)
	if err != nil {
		return nil, invalidField("SeatID", err.Error())
	}

	// 2. Showtime and seat must exist and match
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, notFound("showtime", showtimeID)
	}

	seat, err := s.repo.Seat.FindByID(ctx, seatID)
	if err != nil {
		return nil, err
	}
	if seat == nil {
		return nil, notFound("seat", seatID)
	}
	if seat.RoomID != showtime.RoomID {
		return nil, ErrSeatNotInRoom
	}

	// 3. Fast-path occupancy check; the unique constraint is the real guard
	taken, err := s.repo.Ticket.ExistsForSeat(ctx, showtimeID, seatID)
	if err != nil {
		return nil, err
	}
	if taken {
		s.log.Info("Seat already occupied",
			zap.Int64("showtime_id", showtimeID),
			zap.String("seat", seat.Code),
			zap.String("session_id", session.ID.String()))
		return nil, ErrSeatOccupied
	}

	// 4. Insert at the movie's current price
	ticket := &entity.Ticket{
		ShowtimeID: showtimeID,
		UserID:     session.UserID,
		SeatID:     seatID,
		PriceCents: showtime.PriceCents,
	}
	if err := s.repo.Ticket.Create(ctx, ticket); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			s.log.Info("Seat taken concurrently",
				zap.Int64("showtime_id", showtimeID),
				zap.Int64("seat_id", seatID),
				zap.String("constraint", repository.ConstraintName(err)))
			return nil, ErrSeatOccupied
		case errors.Is(err, repository.ErrReferenced):
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.log.Info("Ticket purchased",
		zap.Int64("ticket_id", ticket.ID),
		zap.Int64("showtime_id", showtimeID),
		zap.String("seat", seat.Code),
		zap.Int64("user_id", session.UserID),
		zap.String("session_id", session.ID.String()))

	return &response.TicketResponse{
		ID:         ticket.ID,
		ShowtimeID: showtimeID,
		SeatID:     seatID,
		SeatCode:   seat.Code,
		Price:      utils.FormatMoney(ticket.PriceCents),
		PriceCents: ticket.PriceCents,
		Message:    fmt.Sprintf("Ticket %d purchased for seat %s", ticket.ID, seat.Code),
	}, nil
}

func (s *bookingService) ReleaseTickets(ctx context.Context, ticketIDs []int64) (int64, error) {
	session, err := currentSession(ctx)
	if err != nil {
		return 0, err
	}
	if len(ticketIDs) == 0 {
		return 0, nil
	}

	released, err := s.repo.Ticket.DeleteUnbilled(ctx, session.UserID, ticketIDs)
	if err != nil {
		return 0, err
	}

	s.log.Info("Unbilled tickets released",
		zap.Int64("released", released),
		zap.Int64s("ticket_ids", ticketIDs),
		zap.String("session_id", session.ID.String()))
	return released, nil
}

func (s *bookingService) GetPaymentMethods(ctx context.Context) ([]response.LookupResponse, error) {
	return cache.Remember(ctx, s.lookups, s.log, paymentMethodsCacheKey, func(ctx context.Context) ([]response.LookupResponse, error) {
		methods, err := s.repo.PaymentMethod.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list payment methods: %w", err)
		}

		result := make([]response.LookupResponse, 0, len(methods))
		for _, m := range methods {
			result = append(result, response.LookupResponse{ID: m.ID, Label: m.Label})
		}
		return result, nil
	})
}

// Checkout bills the given tickets on one receipt. Everything happens in a
// single transaction; the total is the sum of the stored ticket prices.
func (s *bookingService) Checkout(ctx context.Context, req *request.CheckoutRequest) (*response.ReceiptResponse, error) {
	session, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	if len(req.TicketIDs) == 0 {
		return nil, ErrNoTickets
	}

	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	paymentMethodID, err := utils.ParseID(req.PaymentMethodID)
	if err != nil {
		return nil, invalidField("PaymentMethodID", err.Error())
	}

	method, err := s.repo.PaymentMethod.FindByID(ctx, paymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, notFound("payment method", paymentMethodID)
	}

	ticketIDs := uniqueIDs(req.TicketIDs)

	// 2. Receipt + join rows in one transaction
	var result response.ReceiptResponse
	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		tickets, err := tx.Ticket.FindByIDsForUpdate(ctx, ticketIDs)
		if err != nil {
			return err
		}
		if len(tickets) != len(ticketIDs) {
			return fmt.Errorf("ticket: %w", ErrNotFound)
		}

		var total int64
		for _, ticket := range tickets {
			if ticket.UserID != session.UserID {
				s.log.Warn("Checkout with foreign ticket",
					zap.Int64("ticket_id", ticket.ID),
					zap.Int64("user_id", session.UserID))
				return ErrTicketNotOwned
			}
			total += ticket.PriceCents
		}

		receipt := &entity.Receipt{
			Code:            utils.GenerateReceiptCode(s.now()),
			UserID:          session.UserID,
			PaymentMethodID: paymentMethodID,
			TotalCents:      total,
		}
		if err := tx.Receipt.Create(ctx, receipt); err != nil {
			return err
		}

		if err := tx.Receipt.AttachTickets(ctx, receipt.ID, ticketIDs); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrTicketBilled
			}
			return err
		}

		header, err := tx.Receipt.FindByID(ctx, receipt.ID)
		if err != nil {
			return err
		}
		if header == nil {
			return notFound("receipt", receipt.ID)
		}
		lines, err := tx.Receipt.FindLines(ctx, receipt.ID)
		if err != nil {
			return err
		}

		result = response.ReceiptToResponse(header, lines)
		return nil
	})
	if err != nil {
		s.log.Warn("Checkout failed",
			zap.Error(err),
			zap.Int64s("ticket_ids", ticketIDs),
			zap.String("session_id", session.ID.String()))
		return nil, err
	}

	s.log.Info("Receipt issued",
		zap.Int64("receipt_id", result.ID),
		zap.String("code", result.Code),
		zap.Int("tickets", len(result.Tickets)),
		zap.Int64("total_cents", result.TotalCents),
		zap.String("session_id", session.ID.String()))

	s.publishReceiptIssued(ctx, session, &result, ticketIDs)

	return &result, nil
}

// publishReceiptIssued is best effort: the receipt is already committed.
func (s *bookingService) publishReceiptIssued(ctx context.Context, session *utils.Session, receipt *response.ReceiptResponse, ticketIDs []int64) {
	event := queue.ReceiptIssuedEvent{
		ReceiptID:     receipt.ID,
		Code:          receipt.Code,
		UserID:        session.UserID,
		Username:      receipt.Buyer,
		PaymentMethod: receipt.PaymentMethod,
		TicketIDs:     ticketIDs,
		TotalCents:    receipt.TotalCents,
		PurchasedAt:   receipt.PurchasedAt,
	}

	if err := s.publisher.PublishReceiptIssued(ctx, event); err != nil {
		s.log.Warn("Failed to publish receipt event", zap.Error(err), zap.String("code", receipt.Code))
	}
}

func (s *bookingService) GetReceipt(ctx context.Context, receiptID string) (*response.ReceiptResponse, error) {
	session, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	id, err := utils.ParseID(receiptID)
	if err != nil {
		return nil, invalidField("ReceiptID", err.Error())
	}

	header, err := s.repo.Receipt.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, notFound("receipt", id)
	}
	if !session.IsAdmin() && header.UserID != session.UserID {
		s.log.Warn("Receipt access denied", zap.Int64("receipt_id", id), zap.Int64("user_id", session.UserID))
		return nil, ErrForbidden
	}

	lines, err := s.repo.Receipt.FindLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, notFound("receipt", id)
	}

	resp := response.ReceiptToResponse(header, lines)
	return &resp, nil
}

func (s *bookingService) GetMyReceipts(ctx context.Context) ([]response.ReceiptSummaryResponse, error) {
	session, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	receipts, err := s.repo.Receipt.FindByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	result := make([]response.ReceiptSummaryResponse, 0, len(receipts))
	for _, receipt := range receipts {
		result = append(result, response.ReceiptToSummary(receipt))
	}
	return result, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
