package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	portsrepo "github.com/SscSPs/blood_desk_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/SscSPs/blood_desk_app/internal/utils"
)

// TokenConfig carries the settings used to sign access tokens.
type TokenConfig struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

// authService implements the AuthSvcFacade interface
type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	tokens   TokenConfig
}

// NewAuthService creates a new authentication service.
func NewAuthService(repo portsrepo.UserRepositoryFacade, tokens TokenConfig) portssvc.AuthSvcFacade {
	return &authService{userRepo: repo, tokens: tokens}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, username, password string) (*portssvc.AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Login failed: unknown user", slog.String("username", username))
			return nil, apperrors.ErrAuthentication
		}
		s.LogError(ctx, err, "Failed to look up user", slog.String("username", username))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogInfo(ctx, "Login failed: bad password", slog.String("username", username))
		return nil, apperrors.ErrAuthentication
	}

	token, expiresAt, err := utils.GenerateJWT(user.UserID, user.Username, user.Role, s.tokens.Secret, s.tokens.Expiry, s.tokens.Issuer, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.Int64("user_id", user.UserID))
		return nil, apperrors.NewAppError(500, "failed to generate access token", err)
	}

	s.LogInfo(ctx, "User logged in", slog.Int64("user_id", user.UserID))
	return &portssvc.AuthResult{User: *user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return user, nil
}

func (s *authService) EnsureDefaultUser(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: default user needs a username and password", apperrors.ErrValidation)
	}

	_, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		s.LogDebug(ctx, "Default user already present", slog.String("username", username))
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up default user: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash default user password: %w", err)
	}

	_, err = s.userRepo.SaveUser(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleStaff,
		CreatedAt:    s.Now(),
	})
	if err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		return fmt.Errorf("failed to create default user: %w", err)
	}
	s.LogInfo(ctx, "Default user ensured", slog.String("username", username))
	return nil
}
