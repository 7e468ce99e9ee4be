package usecase

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticketing/pkg/utils"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrSeatOccupied     = errors.New("seat is already occupied")
	ErrSeatNotInRoom    = errors.New("seat does not belong to the showtime's room")
	ErrSlotTaken        = errors.New("room already has a showtime at that date and time")
	ErrSeatInUse        = errors.New("seat has tickets and cannot be deleted")
	ErrShowtimeInUse    = errors.New("showtime has tickets and cannot be deleted")
	ErrMovieInUse       = errors.New("movie has showtimes and cannot be deleted")
	ErrRoomFull         = errors.New("room has reached its seat capacity")
	ErrDuplicateSeat    = errors.New("seat code already exists in this room")
	ErrUnknownReference = errors.New("unknown genre or audience type")
	ErrNoTickets        = errors.New("no tickets to bill")
	ErrTicketNotOwned   = errors.New("ticket belongs to another customer")
	ErrTicketBilled     = errors.New("ticket is already on a receipt")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("login required")
	ErrForbidden          = errors.New("not allowed for this account")
)

// ValidationError carries per-field messages for operator input that could
// not be accepted.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func validationFailed(errs map[string]string) error {
	return &ValidationError{Fields: errs}
}

func invalidField(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
}

func currentSession(ctx context.Context) (*utils.Session, error) {
	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return session, nil
}

func requireAdmin(ctx context.Context) (*utils.Session, error) {
	session, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	return session, nil
}
