package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// StockReader defines read operations for stock data
type StockReader interface {
	// ListStockLevels returns every stored level row. Ordering is left to the caller.
	ListStockLevels(ctx context.Context) ([]domain.StockLevel, error)

	// ListMovements returns the most recent movements first, at most limit rows.
	ListMovements(ctx context.Context, limit int) ([]domain.StockMovement, error)

	// ListMovementsSince returns movements with a timestamp at or after since,
	// most recent first, at most limit rows.
	ListMovementsSince(ctx context.Context, since time.Time, limit int) ([]domain.StockMovement, error)
}

// StockWriter defines write operations for stock data
type StockWriter interface {
	// EnsureStockRows inserts a zero level for every given group that has no row yet.
	EnsureStockRows(ctx context.Context, groups []domain.BloodGroup, now time.Time) error
}

// StockTransactionSupport defines operations that run inside a caller-owned transaction
type StockTransactionSupport interface {
	// LockStockLevelForUpdate creates the level row if missing and locks it until tx ends.
	LockStockLevelForUpdate(ctx context.Context, tx pgx.Tx, group domain.BloodGroup, now time.Time) (*domain.StockLevel, error)

	// UpdateStockUnitsInTx overwrites the unit count of a locked level row.
	UpdateStockUnitsInTx(ctx context.Context, tx pgx.Tx, group domain.BloodGroup, units int, now time.Time) (*domain.StockLevel, error)

	// InsertMovementInTx appends a movement and returns it with its assigned id.
	InsertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) (*domain.StockMovement, error)
}

// StockRepositoryFacade combines all stock-related repository interfaces
type StockRepositoryFacade interface {
	StockReader
	StockWriter
	StockTransactionSupport
}

// StockRepositoryWithTx extends StockRepositoryFacade with transaction capabilities
type StockRepositoryWithTx interface {
	StockRepositoryFacade
	TransactionManager
}
