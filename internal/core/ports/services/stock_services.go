package services

import (
	"context"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
)

// StockReaderSvc defines read operations on the stock ledger
type StockReaderSvc interface {
	// GetLevels returns one level per blood group in canonical order.
	// Groups with no stored row are reported with zero units.
	GetLevels(ctx context.Context) ([]domain.StockLevel, error)

	// ListMovements returns the most recent movements first.
	// A non-positive limit selects the default page size.
	ListMovements(ctx context.Context, limit int) ([]domain.StockMovement, error)
}

// StockWriterSvc defines mutations of the stock ledger
type StockWriterSvc interface {
	// EnsureInitialized creates a zero level for every group that has none.
	EnsureInitialized(ctx context.Context) error

	// Adjust atomically applies a signed delta to one group and records the movement.
	Adjust(ctx context.Context, adj domain.StockAdjustment) (*domain.StockLevel, *domain.StockMovement, error)
}

// StockSvcFacade combines all stock ledger operations
type StockSvcFacade interface {
	StockReaderSvc
	StockWriterSvc
}
