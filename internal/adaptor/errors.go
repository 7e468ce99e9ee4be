package adaptor

import (
	"context"
	"errors"
	"io"
	"strings"

	"cinema-ticketing/internal/usecase"

	"go.uber.org/zap"
)

// businessErrors are printed as they are; the operator can act on them.
var businessErrors = []error{
	usecase.ErrSeatOccupied,
	usecase.ErrSeatNotInRoom,
	usecase.ErrSlotTaken,
	usecase.ErrSeatInUse,
	usecase.ErrShowtimeInUse,
	usecase.ErrMovieInUse,
	usecase.ErrRoomFull,
	usecase.ErrDuplicateSeat,
	usecase.ErrUnknownReference,
	usecase.ErrNoTickets,
	usecase.ErrTicketNotOwned,
	usecase.ErrTicketBilled,
	usecase.ErrInvalidCredentials,
	usecase.ErrUnauthenticated,
	usecase.ErrForbidden,
}

// isTerminal reports errors that end the session rather than the current action.
func isTerminal(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}

// handleServiceError prints a message for err. Only terminal errors are
// returned; everything else ends the current action, not the session.
func handleServiceError(c *Console, log *zap.Logger, err error, action string) error {
	if isTerminal(err) {
		return err
	}

	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		c.Println("Invalid input:", strings.TrimPrefix(verr.Error(), "validation failed: "))
		return nil
	}

	if errors.Is(err, usecase.ErrNotFound) {
		what := strings.TrimSuffix(err.Error(), ": "+usecase.ErrNotFound.Error())
		if err == usecase.ErrNotFound {
			what = "the requested record does not exist"
		}
		c.Println("Not found:", what)
		return nil
	}

	for _, known := range businessErrors {
		if errors.Is(err, known) {
			c.Println(capitalize(known.Error()) + ".")
			return nil
		}
	}

	log.Error("Failed to "+action, zap.Error(err))
	c.Printf("Could not %s. Please try again.\n", action)
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
