package handlers_test

import (
	"context"
	"io"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock StockService ---
type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) GetLevels(ctx context.Context) ([]domain.StockLevel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLevel), args.Error(1)
}

func (m *MockStockService) ListMovements(ctx context.Context, limit int) ([]domain.StockMovement, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockStockService) EnsureInitialized(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStockService) Adjust(ctx context.Context, adj domain.StockAdjustment) (*domain.StockLevel, *domain.StockMovement, error) {
	args := m.Called(ctx, adj)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.StockLevel), args.Get(1).(*domain.StockMovement), args.Error(2)
}

var _ portssvc.StockSvcFacade = (*MockStockService)(nil)

// --- Mock DonorService ---
type MockDonorService struct {
	mock.Mock
}

func (m *MockDonorService) GetDonor(ctx context.Context, donorID int64) (*domain.Donor, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donor), args.Error(1)
}

func (m *MockDonorService) ListDonors(ctx context.Context, limit int) ([]domain.Donor, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donor), args.Error(1)
}

func (m *MockDonorService) SearchDonors(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donor), args.Error(1)
}

func (m *MockDonorService) ListAllDonors(ctx context.Context) ([]domain.Donor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donor), args.Error(1)
}

func (m *MockDonorService) CreateDonor(ctx context.Context, donor domain.Donor) (*domain.Donor, error) {
	args := m.Called(ctx, donor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donor), args.Error(1)
}

func (m *MockDonorService) UpdateDonor(ctx context.Context, donorID int64, patch domain.DonorPatch) (*domain.Donor, error) {
	args := m.Called(ctx, donorID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donor), args.Error(1)
}

func (m *MockDonorService) DeleteDonor(ctx context.Context, donorID int64) error {
	return m.Called(ctx, donorID).Error(0)
}

var _ portssvc.DonorSvcFacade = (*MockDonorService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*portssvc.AuthResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.AuthResult), args.Error(1)
}

func (m *MockAuthService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) EnsureDefaultUser(ctx context.Context, username, password string) error {
	return m.Called(ctx, username, password).Error(0)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock AnalyticsService ---
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Summary(ctx context.Context, days int) (*domain.StockSummary, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockSummary), args.Error(1)
}

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) WriteDonorsCSV(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	if s, ok := args.Get(0).(string); ok && s != "" {
		_, _ = io.WriteString(w, s)
	}
	return args.Error(1)
}

// --- Mock HealthService ---
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var mockCtx = mock.Anything
