package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	portsrepo "github.com/SscSPs/blood_desk_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
)

const (
	defaultSummaryDays     = 30
	defaultSummaryScanRows = 300
)

// analyticsService implements the AnalyticsSvc interface
type analyticsService struct {
	BaseService
	movements         portsrepo.StockReader
	stock             portssvc.StockReaderSvc
	lowStockThreshold int
	scanLimit         int
}

// AnalyticsServiceOption is a functional option for configuring the analytics service
type AnalyticsServiceOption func(*analyticsService)

// WithLowStockThreshold sets the unit count below which a group is reported as low.
func WithLowStockThreshold(threshold int) AnalyticsServiceOption {
	return func(s *analyticsService) {
		s.lowStockThreshold = threshold
	}
}

// WithScanLimit bounds the number of movements one summary may read.
func WithScanLimit(limit int) AnalyticsServiceOption {
	return func(s *analyticsService) {
		if limit > 0 {
			s.scanLimit = limit
		}
	}
}

// WithAnalyticsClock overrides the time source that anchors the summary window.
func WithAnalyticsClock(clock func() time.Time) AnalyticsServiceOption {
	return func(s *analyticsService) {
		s.clock = clock
	}
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(movements portsrepo.StockReader, stock portssvc.StockReaderSvc, options ...AnalyticsServiceOption) portssvc.AnalyticsSvc {
	svc := &analyticsService{
		movements:         movements,
		stock:             stock,
		lowStockThreshold: domain.DefaultLowStockThreshold,
		scanLimit:         defaultSummaryScanRows,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AnalyticsSvc = (*analyticsService)(nil)

func (s *analyticsService) Summary(ctx context.Context, days int) (*domain.StockSummary, error) {
	if days <= 0 {
		days = defaultSummaryDays
	}
	since := s.Now().AddDate(0, 0, -days)

	movements, err := s.movements.ListMovementsSince(ctx, since, s.scanLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load movements for summary", slog.Int("days", days))
		return nil, fmt.Errorf("failed to load movements: %w", err)
	}

	levels, err := s.stock.GetLevels(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.StockSummary{
		Stock:     levels,
		Donations: map[string]int{},
		Issues:    map[string]int{},
		LowStock:  []domain.BloodGroup{},
	}
	for _, m := range movements {
		day := m.Timestamp.UTC().Format(domain.DateLayout)
		if m.Delta > 0 {
			summary.Donations[day] += m.Delta
		} else {
			summary.Issues[day] += -m.Delta
		}
	}
	for _, level := range levels {
		if level.IsLow(s.lowStockThreshold) {
			summary.LowStock = append(summary.LowStock, level.BloodGroup)
		}
	}

	if len(movements) == s.scanLimit {
		s.LogDebug(ctx, "Summary hit the movement scan limit", slog.Int("limit", s.scanLimit), slog.Int("days", days))
	}
	return summary, nil
}
