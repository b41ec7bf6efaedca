package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	portsrepo "github.com/SscSPs/blood_desk_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/SscSPs/blood_desk_app/internal/platform/metrics"
)

const (
	defaultMovementLimit = 100
	maxMovementLimit     = 1000
)

// stockService implements the StockSvcFacade interface
type stockService struct {
	BaseService
	stockRepo portsrepo.StockRepositoryWithTx
	metrics   *metrics.Metrics
}

// StockServiceOption is a functional option for configuring the stock service
type StockServiceOption func(*stockService)

// WithStockClock overrides the time source used to stamp levels and movements.
func WithStockClock(clock func() time.Time) StockServiceOption {
	return func(s *stockService) {
		s.clock = clock
	}
}

// WithStockMetrics records committed and rejected adjustments.
func WithStockMetrics(m *metrics.Metrics) StockServiceOption {
	return func(s *stockService) {
		s.metrics = m
	}
}

// NewStockService creates a new stock ledger service with the provided options
func NewStockService(repo portsrepo.StockRepositoryWithTx, options ...StockServiceOption) portssvc.StockSvcFacade {
	svc := &stockService{stockRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

func (s *stockService) EnsureInitialized(ctx context.Context) error {
	if err := s.stockRepo.EnsureStockRows(ctx, domain.AllBloodGroups(), s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to initialize stock rows")
		return fmt.Errorf("failed to initialize stock: %w", err)
	}
	if _, err := s.GetLevels(ctx); err != nil {
		return fmt.Errorf("failed to read initialized stock: %w", err)
	}
	return nil
}

// GetLevels reports every group in canonical order and refreshes the stock gauge.
func (s *stockService) GetLevels(ctx context.Context) ([]domain.StockLevel, error) {
	stored, err := s.stockRepo.ListStockLevels(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stock levels")
		return nil, fmt.Errorf("failed to list stock levels: %w", err)
	}

	byGroup := make(map[domain.BloodGroup]domain.StockLevel, len(stored))
	for _, level := range stored {
		byGroup[level.BloodGroup] = level
	}

	groups := domain.AllBloodGroups()
	levels := make([]domain.StockLevel, 0, len(groups))
	for _, g := range groups {
		level, ok := byGroup[g]
		if !ok {
			level = domain.StockLevel{BloodGroup: g}
		}
		s.metrics.StockLevelObserved(string(g), level.Units)
		levels = append(levels, level)
	}
	return levels, nil
}

func (s *stockService) ListMovements(ctx context.Context, limit int) ([]domain.StockMovement, error) {
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	if limit > maxMovementLimit {
		limit = maxMovementLimit
	}
	movements, err := s.stockRepo.ListMovements(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stock movements", slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	if movements == nil {
		movements = []domain.StockMovement{}
	}
	return movements, nil
}

// validateAdjustment checks the group first, then the delta, then the reason.
func validateAdjustment(adj domain.StockAdjustment) (domain.MovementReason, error) {
	if !adj.BloodGroup.IsValid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidGroup, string(adj.BloodGroup))
	}
	if adj.Delta == 0 {
		return "", apperrors.ErrInvalidDelta
	}
	return domain.ParseMovementReason(string(adj.Reason))
}

func (s *stockService) Adjust(ctx context.Context, adj domain.StockAdjustment) (*domain.StockLevel, *domain.StockMovement, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("blood_group", string(adj.BloodGroup)),
		slog.Int("delta", adj.Delta),
	)

	reason, err := validateAdjustment(adj)
	if err != nil {
		logger.Warn("Rejected stock adjustment", slog.String("error", err.Error()))
		s.metrics.StockRejected(rejectionCause(err))
		return nil, nil, err
	}

	tx, err := s.stockRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin stock transaction", slog.String("error", err.Error()))
		return nil, nil, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := s.stockRepo.Rollback(ctx, tx); rbErr != nil {
			logger.Error("Failed to roll back stock transaction", slog.String("error", rbErr.Error()))
		}
	}()

	now := s.Now()
	current, err := s.stockRepo.LockStockLevelForUpdate(ctx, tx, adj.BloodGroup, now)
	if err != nil {
		logger.Error("Failed to lock stock level", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to lock stock level: %w", err)
	}

	newUnits := int64(current.Units) + int64(adj.Delta)
	if newUnits < 0 {
		err := fmt.Errorf("%w: %s has %d, requested change %d", apperrors.ErrInsufficientStock, adj.BloodGroup, current.Units, adj.Delta)
		logger.Warn("Rejected stock adjustment", slog.String("error", err.Error()))
		s.metrics.StockRejected(rejectionCause(err))
		return nil, nil, err
	}
	if newUnits > math.MaxInt32 {
		err := fmt.Errorf("%w: resulting units exceed %d", apperrors.ErrValidation, math.MaxInt32)
		s.metrics.StockRejected(rejectionCause(err))
		return nil, nil, err
	}

	updated, err := s.stockRepo.UpdateStockUnitsInTx(ctx, tx, adj.BloodGroup, int(newUnits), now)
	if err != nil {
		logger.Error("Failed to update stock units", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to update stock units: %w", err)
	}

	movement, err := s.stockRepo.InsertMovementInTx(ctx, tx, domain.StockMovement{
		BloodGroup: adj.BloodGroup,
		Delta:      adj.Delta,
		Reason:     reason,
		Timestamp:  now,
		UserID:     adj.ActorID,
	})
	if err != nil {
		logger.Error("Failed to record stock movement", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to record stock movement: %w", err)
	}

	if err := s.stockRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit stock transaction", slog.String("error", err.Error()))
		return nil, nil, err
	}
	committed = true

	s.metrics.StockAdjusted(string(updated.BloodGroup), string(reason), updated.Units)
	logger.Info("Stock adjusted",
		slog.String("reason", string(reason)),
		slog.Int("units", updated.Units),
		slog.Int64("movement_id", movement.MovementID))
	return updated, movement, nil
}

func rejectionCause(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidGroup):
		return "invalid_group"
	case errors.Is(err, apperrors.ErrInvalidDelta):
		return "invalid_delta"
	case errors.Is(err, apperrors.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "validation"
	}
}
