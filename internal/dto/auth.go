package dto

import (
	"time"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
)

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public view of an operator.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserEnvelope wraps a single operator.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// ToUserResponse converts a domain.User to its public wire form.
func ToUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.UserID, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt}
}
