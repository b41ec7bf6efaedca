package services

import (
	"context"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
)

// AnalyticsSvc summarises recent stock activity
type AnalyticsSvc interface {
	// Summary aggregates movements of the last days days. A non-positive value means 30.
	Summary(ctx context.Context, days int) (*domain.StockSummary, error)
}
