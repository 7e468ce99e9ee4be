package usecase

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context) error

	// EnsureUser creates the account unless the username is already taken.
	// It reports whether a row was inserted.
	EnsureUser(ctx context.Context, username, password string, role entity.UserRole) (bool, error)
	GetAllUsers(ctx context.Context) ([]response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository // user + session
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	// 2. Find user
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	// 4. Record the session
	session := &entity.Session{
		ID:     utils.GenerateSessionID(),
		UserID: user.ID,
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("session_id", session.ID.String()))

	return &response.AuthResponse{
		SessionID: session.ID.String(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

func (s *authService) Logout(ctx context.Context) error {
	session, err := currentSession(ctx)
	if err != nil {
		return err
	}

	if err := s.repo.Session.Revoke(ctx, session.ID); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err), zap.String("session_id", session.ID.String()))
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out",
		zap.Int64("user_id", session.UserID),
		zap.String("session_id", session.ID.String()))
	return nil
}

func (s *authService) EnsureUser(ctx context.Context, username, password string, role entity.UserRole) (bool, error) {
	existing, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("find user %s: %w", username, err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := utils.HashPassword(password, s.config.Security.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return false, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}

	s.log.Info("User created", zap.Int64("user_id", user.ID), zap.String("username", username), zap.String("role", string(role)))
	return true, nil
}

func (s *authService) GetAllUsers(ctx context.Context) ([]response.UserResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	result := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, response.UserToResponse(user))
	}
	return result, nil
}
