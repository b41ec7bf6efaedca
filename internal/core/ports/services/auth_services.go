package services

import (
	"context"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
)

// AuthResult is what a successful login yields.
type AuthResult struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthSvcFacade defines operator authentication
type AuthSvcFacade interface {
	// Login verifies credentials and issues a signed access token.
	Login(ctx context.Context, username, password string) (*AuthResult, error)

	// GetUser returns the operator with the given id.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)

	// EnsureDefaultUser creates the operator account if no user with that name exists.
	EnsureDefaultUser(ctx context.Context, username, password string) error
}
