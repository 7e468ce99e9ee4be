package adaptor

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	console *Console
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, console *Console, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		console: console,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Login returns the new session, or nil when the credentials were refused.
func (h *AuthHandler) Login(ctx context.Context) (*utils.Session, error) {
	h.console.Title("Log in")

	username, err := h.console.Prompt(ctx, "Username")
	if err != nil {
		return nil, err
	}
	password, err := h.console.Prompt(ctx, "Password")
	if err != nil {
		return nil, err
	}

	auth, err := h.service.Login(ctx, &request.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, handleServiceError(h.console, h.log, err, "log in")
	}

	sessionID, err := uuid.Parse(auth.SessionID)
	if err != nil {
		return nil, fmt.Errorf("parse session id: %w", err)
	}

	h.console.Printf("Welcome, %s.\n", auth.Username)
	return &utils.Session{
		ID:       sessionID,
		UserID:   auth.UserID,
		Username: auth.Username,
		Role:     string(auth.Role),
	}, nil
}

func (h *AuthHandler) Logout(ctx context.Context) error {
	if err := h.service.Logout(ctx); err != nil {
		return handleServiceError(h.console, h.log, err, "log out")
	}
	h.console.Println("Logged out.")
	return nil
}

func (h *AuthHandler) ListUsers(ctx context.Context) error {
	users, err := h.service.GetAllUsers(ctx)
	if err != nil {
		return handleServiceError(h.console, h.log, err, "list users")
	}

	h.console.Title("Users")
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			fmt.Sprint(u.ID),
			u.Username,
			string(u.Role),
			u.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	printTable(h.console.out, []column{{"ID", 5}, {"Username", 20}, {"Role", 10}, {"Created", 16}}, rows)
	return nil
}
