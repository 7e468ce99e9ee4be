package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	AttachTickets(ctx context.Context, receiptID int64, ticketIDs []int64) error
	FindByID(ctx context.Context, id int64) (*entity.ReceiptHeader, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.ReceiptHeader, error)
	FindLines(ctx context.Context, receiptID int64) ([]*entity.ReceiptLine, error)
}

type receiptRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReceiptRepository(db database.Querier, log *zap.Logger) ReceiptRepository {
	return &receiptRepository{
		db:  db,
		log: log.With(zap.String("repository", "receipt")),
	}
}

const receiptHeaderSelect = `
	SELECT rc.id, rc.code, rc.user_id, rc.payment_method_id, rc.purchased_at, rc.total_cents,
	       u.username, pm.description
	FROM receipts rc
	JOIN users u ON u.id = rc.user_id
	JOIN payment_methods pm ON pm.id = rc.payment_method_id
`

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	query := `
		INSERT INTO receipts (code, user_id, payment_method_id, total_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, purchased_at
	`

	err := r.db.QueryRow(ctx, query,
		receipt.Code,
		receipt.UserID,
		receipt.PaymentMethodID,
		receipt.TotalCents,
	).Scan(&receipt.ID, &receipt.PurchasedAt)
	if err != nil {
		r.log.Error("Failed to create receipt",
			zap.Error(err),
			zap.String("code", receipt.Code),
			zap.Int64("user_id", receipt.UserID),
		)
		return fmt.Errorf("create receipt %s: %w", receipt.Code, classify(err))
	}

	return nil
}

// AttachTickets fails with ErrDuplicate when any ticket is already billed.
func (r *receiptRepository) AttachTickets(ctx context.Context, receiptID int64, ticketIDs []int64) error {
	query := `
		INSERT INTO receipt_tickets (receipt_id, ticket_id)
		SELECT $1, unnest($2::bigint[])
	`

	if _, err := r.db.Exec(ctx, query, receiptID, ticketIDs); err != nil {
		r.log.Error("Failed to attach tickets",
			zap.Error(err),
			zap.Int64("receipt_id", receiptID),
			zap.Int64s("ticket_ids", ticketIDs),
		)
		return fmt.Errorf("attach tickets to receipt %d: %w", receiptID, classify(err))
	}

	return nil
}

func (r *receiptRepository) FindByID(ctx context.Context, id int64) (*entity.ReceiptHeader, error) {
	query := receiptHeaderSelect + ` WHERE rc.id = $1`

	receipt, err := scanReceiptHeader(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find receipt", zap.Error(err), zap.Int64("receipt_id", id))
		return nil, fmt.Errorf("find receipt %d: %w", id, err)
	}

	return receipt, nil
}

func (r *receiptRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.ReceiptHeader, error) {
	query := receiptHeaderSelect + ` WHERE rc.user_id = $1 ORDER BY rc.purchased_at DESC, rc.id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list receipts", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("list receipts of user %d: %w", userID, err)
	}
	defer rows.Close()

	var receipts []*entity.ReceiptHeader
	for rows.Next() {
		receipt, err := scanReceiptHeader(rows)
		if err != nil {
			r.log.Error("Failed to scan receipt row", zap.Error(err))
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		receipts = append(receipts, receipt)
	}

	return receipts, rows.Err()
}

func (r *receiptRepository) FindLines(ctx context.Context, receiptID int64) ([]*entity.ReceiptLine, error) {
	query := `
		SELECT t.id, m.title, sh.show_date, sh.show_time, ro.name, s.code, t.price_cents
		FROM receipt_tickets rt
		JOIN tickets t ON t.id = rt.ticket_id
		JOIN showtimes sh ON sh.id = t.showtime_id
		JOIN movies m ON m.id = sh.movie_id
		JOIN rooms ro ON ro.id = sh.room_id
		JOIN seats s ON s.id = t.seat_id
		WHERE rt.receipt_id = $1
		ORDER BY sh.show_date, sh.show_time, s.code
	`

	rows, err := r.db.Query(ctx, query, receiptID)
	if err != nil {
		r.log.Error("Failed to list receipt lines", zap.Error(err), zap.Int64("receipt_id", receiptID))
		return nil, fmt.Errorf("list lines of receipt %d: %w", receiptID, err)
	}
	defer rows.Close()

	var lines []*entity.ReceiptLine
	for rows.Next() {
		var line entity.ReceiptLine
		var clock pgtype.Time
		err := rows.Scan(
			&line.TicketID,
			&line.MovieTitle,
			&line.ShowDate,
			&clock,
			&line.RoomName,
			&line.SeatCode,
			&line.PriceCents,
		)
		if err != nil {
			r.log.Error("Failed to scan receipt line", zap.Error(err))
			return nil, fmt.Errorf("scan receipt line: %w", err)
		}
		line.ShowTime = clockFromPg(clock)
		lines = append(lines, &line)
	}

	return lines, rows.Err()
}

func scanReceiptHeader(row pgx.Row) (*entity.ReceiptHeader, error) {
	var receipt entity.ReceiptHeader
	err := row.Scan(
		&receipt.ID,
		&receipt.Code,
		&receipt.UserID,
		&receipt.PaymentMethodID,
		&receipt.PurchasedAt,
		&receipt.TotalCents,
		&receipt.Username,
		&receipt.PaymentMethod,
	)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}
