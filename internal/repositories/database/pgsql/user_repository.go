package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	portsrepo "github.com/SscSPs/blood_desk_app/internal/core/ports/repositories"
	"github.com/SscSPs/blood_desk_app/internal/models"
	"github.com/SscSPs/blood_desk_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const userColumns = "user_id, username, password_hash, role, created_at"

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db DBTX) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(&m.UserID, &m.Username, &m.PasswordHash, &m.Role, &m.CreatedAt)
	return m, err
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns + `;
	`
	saved, err := scanUser(r.Pool.QueryRow(ctx, query, m.Username, m.PasswordHash, m.Role, m.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username %q already exists", apperrors.ErrDuplicate, user.Username)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	d := mapping.ToDomainUser(saved)
	return &d, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %d: %w", userID, err)
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %q: %w", username, err)
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}
