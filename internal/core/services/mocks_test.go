package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func int64Ptr(i int64) *int64 {
	return &i
}

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockStockRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStockRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStockRepository) ListStockLevels(ctx context.Context) ([]domain.StockLevel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLevel), args.Error(1)
}

func (m *MockStockRepository) ListMovements(ctx context.Context, limit int) ([]domain.StockMovement, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockStockRepository) ListMovementsSince(ctx context.Context, since time.Time, limit int) ([]domain.StockMovement, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockStockRepository) EnsureStockRows(ctx context.Context, groups []domain.BloodGroup, now time.Time) error {
	args := m.Called(ctx, groups, now)
	return args.Error(0)
}

func (m *MockStockRepository) LockStockLevelForUpdate(ctx context.Context, tx pgx.Tx, group domain.BloodGroup, now time.Time) (*domain.StockLevel, error) {
	args := m.Called(ctx, tx, group, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockLevel), args.Error(1)
}

func (m *MockStockRepository) UpdateStockUnitsInTx(ctx context.Context, tx pgx.Tx, group domain.BloodGroup, units int, now time.Time) (*domain.StockLevel, error) {
	args := m.Called(ctx, tx, group, units, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockLevel), args.Error(1)
}

func (m *MockStockRepository) InsertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) (*domain.StockMovement, error) {
	args := m.Called(ctx, tx, movement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

// --- Mock DonorRepository ---
type MockDonorRepository struct {
	mock.Mock
}

func (m *MockDonorRepository) FindDonorByID(ctx context.Context, donorID int64) (*domain.Donor, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donor), args.Error(1)
}

func (m *MockDonorRepository) ListDonors(ctx context.Context, limit int) ([]domain.Donor, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donor), args.Error(1)
}

func (m *MockDonorRepository) SearchDonors(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donor), args.Error(1)
}

func (m *MockDonorRepository) ListAllDonors(ctx context.Context) ([]domain.Donor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donor), args.Error(1)
}

func (m *MockDonorRepository) SaveDonor(ctx context.Context, donor domain.Donor) (*domain.Donor, error) {
	args := m.Called(ctx, donor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donor), args.Error(1)
}

func (m *MockDonorRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockDonorRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDonorRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDonorRepository) LockDonorForUpdate(ctx context.Context, tx pgx.Tx, donorID int64) (*domain.Donor, error) {
	args := m.Called(ctx, tx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donor), args.Error(1)
}

func (m *MockDonorRepository) UpdateDonorInTx(ctx context.Context, tx pgx.Tx, donor domain.Donor) (*domain.Donor, error) {
	args := m.Called(ctx, tx, donor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donor), args.Error(1)
}

func (m *MockDonorRepository) DeleteDonor(ctx context.Context, donorID int64) error {
	args := m.Called(ctx, donorID)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
