package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	portsrepo "github.com/SscSPs/blood_desk_app/internal/core/ports/repositories"
	"github.com/SscSPs/blood_desk_app/internal/models"
	"github.com/SscSPs/blood_desk_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	stockLevelColumns    = "blood_group, units, last_updated_at"
	stockMovementColumns = "movement_id, blood_group, delta, reason, created_at, user_id"
)

// PgxStockRepository implements the stock ledger storage on postgres.
type PgxStockRepository struct {
	BaseRepository
}

// newPgxStockRepository creates a new repository for stock levels and movements.
func newPgxStockRepository(db DBTX) *PgxStockRepository {
	return &PgxStockRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.StockRepositoryWithTx = (*PgxStockRepository)(nil)

func scanStockLevel(row pgx.Row) (models.StockLevel, error) {
	var m models.StockLevel
	err := row.Scan(&m.BloodGroup, &m.Units, &m.LastUpdatedAt)
	return m, err
}

func scanStockMovement(row pgx.Row) (models.StockMovement, error) {
	var m models.StockMovement
	err := row.Scan(&m.MovementID, &m.BloodGroup, &m.Delta, &m.Reason, &m.CreatedAt, &m.UserID)
	return m, err
}

func (r *PgxStockRepository) EnsureStockRows(ctx context.Context, groups []domain.BloodGroup, now time.Time) error {
	if len(groups) == 0 {
		return nil
	}
	insert := psql.Insert("stock_levels").Columns("blood_group", "units", "last_updated_at")
	for _, g := range groups {
		insert = insert.Values(string(g), 0, now)
	}
	query, args, err := insert.Suffix("ON CONFLICT (blood_group) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build stock row insert: %w", err)
	}
	if _, err := r.Pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to ensure stock rows: %w", err)
	}
	return nil
}

func (r *PgxStockRepository) ListStockLevels(ctx context.Context) ([]domain.StockLevel, error) {
	query := `SELECT ` + stockLevelColumns + ` FROM stock_levels;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock levels: %w", err)
	}
	defer rows.Close()

	levels := []domain.StockLevel{}
	for rows.Next() {
		m, err := scanStockLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock level row: %w", err)
		}
		levels = append(levels, mapping.ToDomainStockLevel(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock level rows: %w", err)
	}
	return levels, nil
}

func (r *PgxStockRepository) ListMovements(ctx context.Context, limit int) ([]domain.StockMovement, error) {
	return r.queryMovements(ctx, r.movementSelect(limit))
}

func (r *PgxStockRepository) ListMovementsSince(ctx context.Context, since time.Time, limit int) ([]domain.StockMovement, error) {
	return r.queryMovements(ctx, r.movementSelect(limit).Where(squirrel.GtOrEq{"created_at": since}))
}

func (r *PgxStockRepository) movementSelect(limit int) squirrel.SelectBuilder {
	return psql.Select(stockMovementColumns).
		From("stock_movements").
		OrderBy("movement_id DESC").
		Limit(uint64(limit))
}

func (r *PgxStockRepository) queryMovements(ctx context.Context, sb squirrel.SelectBuilder) ([]domain.StockMovement, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build movement query: %w", err)
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock movements: %w", err)
	}
	defer rows.Close()

	var ms []models.StockMovement
	for rows.Next() {
		m, err := scanStockMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock movement row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock movement rows: %w", err)
	}
	return mapping.ToDomainStockMovementSlice(ms), nil
}

func (r *PgxStockRepository) LockStockLevelForUpdate(ctx context.Context, tx pgx.Tx, group domain.BloodGroup, now time.Time) (*domain.StockLevel, error) {
	ensure := `
		INSERT INTO stock_levels (blood_group, units, last_updated_at)
		VALUES ($1, 0, $2)
		ON CONFLICT (blood_group) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, ensure, string(group), now); err != nil {
		return nil, fmt.Errorf("failed to ensure stock row for %s: %w", group, err)
	}

	query := `SELECT ` + stockLevelColumns + ` FROM stock_levels WHERE blood_group = $1 FOR UPDATE;`
	m, err := scanStockLevel(tx.QueryRow(ctx, query, string(group)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock stock row for %s: %w", group, err)
	}
	level := mapping.ToDomainStockLevel(m)
	return &level, nil
}

func (r *PgxStockRepository) UpdateStockUnitsInTx(ctx context.Context, tx pgx.Tx, group domain.BloodGroup, units int, now time.Time) (*domain.StockLevel, error) {
	query := `
		UPDATE stock_levels SET units = $1, last_updated_at = $2
		WHERE blood_group = $3
		RETURNING ` + stockLevelColumns + `;
	`
	m, err := scanStockLevel(tx.QueryRow(ctx, query, int32(units), now, string(group)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update stock units for %s: %w", group, err)
	}
	level := mapping.ToDomainStockLevel(m)
	return &level, nil
}

func (r *PgxStockRepository) InsertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) (*domain.StockMovement, error) {
	mm := mapping.ToModelStockMovement(movement)
	query := `
		INSERT INTO stock_movements (blood_group, delta, reason, created_at, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + stockMovementColumns + `;
	`
	saved, err := scanStockMovement(tx.QueryRow(ctx, query, mm.BloodGroup, mm.Delta, mm.Reason, mm.CreatedAt, mm.UserID))
	if err != nil {
		return nil, fmt.Errorf("failed to insert stock movement: %w", err)
	}
	out := mapping.ToDomainStockMovement(saved)
	return &out, nil
}
