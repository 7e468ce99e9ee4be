package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const SessionKey contextKey = "session"

// Session is the logged-in operator. The menu loop owns it and threads it
// through context to every service call that needs an identity.
type Session struct {
	ID       uuid.UUID
	UserID   int64
	Username string
	Role     string
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == "admin"
}

func SetSessionContext(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

func GetSessionFromContext(ctx context.Context) (*Session, bool) {
	sessionVal := ctx.Value(SessionKey)
	if sessionVal == nil {
		return nil, false
	}

	session, ok := sessionVal.(*Session)
	if !ok || session == nil {
		return nil, false
	}

	return session, true
}
