package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type AuthResponse struct {
	SessionID string
	UserID    int64
	Username  string
	Role      entity.UserRole
}

type UserResponse struct {
	ID        int64
	Username  string
	Role      entity.UserRole
	CreatedAt time.Time
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
