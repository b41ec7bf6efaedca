package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	portsrepo "github.com/SscSPs/blood_desk_app/internal/core/ports/repositories"
	"github.com/SscSPs/blood_desk_app/internal/models"
	"github.com/SscSPs/blood_desk_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

var donorColumns = []string{
	"donor_id", "name", "nic", "phone", "email", "address", "area",
	"blood_group", "age", "last_donation_date", "notes", "is_active",
	"created_at", "last_updated_at",
}

// donorSearchColumns are matched by the free-text query.
var donorSearchColumns = []string{"name", "phone", "email", "address", "area"}

// PgxDonorRepository implements donor storage on postgres.
type PgxDonorRepository struct {
	BaseRepository
}

// newPgxDonorRepository creates a new repository for donors.
func newPgxDonorRepository(db DBTX) *PgxDonorRepository {
	return &PgxDonorRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.DonorRepositoryWithTx = (*PgxDonorRepository)(nil)

func scanDonor(row pgx.Row) (models.Donor, error) {
	var m models.Donor
	err := row.Scan(
		&m.DonorID,
		&m.Name,
		&m.NIC,
		&m.Phone,
		&m.Email,
		&m.Address,
		&m.Area,
		&m.BloodGroup,
		&m.Age,
		&m.LastDonationDate,
		&m.Notes,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxDonorRepository) queryDonors(ctx context.Context, sb squirrel.SelectBuilder) ([]domain.Donor, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build donor query: %w", err)
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query donors: %w", err)
	}
	defer rows.Close()

	var ms []models.Donor
	for rows.Next() {
		m, err := scanDonor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donor row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating donor rows: %w", err)
	}
	return mapping.ToDomainDonorSlice(ms), nil
}

func (r *PgxDonorRepository) FindDonorByID(ctx context.Context, donorID int64) (*domain.Donor, error) {
	return findDonor(ctx, r.Pool, donorID, "")
}

// LockDonorForUpdate reads a donor and holds its row lock until tx ends.
func (r *PgxDonorRepository) LockDonorForUpdate(ctx context.Context, tx pgx.Tx, donorID int64) (*domain.Donor, error) {
	return findDonor(ctx, tx, donorID, "FOR UPDATE")
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func findDonor(ctx context.Context, q rowQuerier, donorID int64, suffix string) (*domain.Donor, error) {
	sb := psql.Select(donorColumns...).
		From("donors").
		Where(squirrel.Eq{"donor_id": donorID})
	if suffix != "" {
		sb = sb.Suffix(suffix)
	}
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build donor query: %w", err)
	}
	m, err := scanDonor(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find donor by ID %d: %w", donorID, err)
	}
	d := mapping.ToDomainDonor(m)
	return &d, nil
}

func (r *PgxDonorRepository) ListDonors(ctx context.Context, limit int) ([]domain.Donor, error) {
	return r.queryDonors(ctx, psql.Select(donorColumns...).
		From("donors").
		OrderBy("donor_id DESC").
		Limit(uint64(limit)))
}

func (r *PgxDonorRepository) ListAllDonors(ctx context.Context) ([]domain.Donor, error) {
	return r.queryDonors(ctx, psql.Select(donorColumns...).
		From("donors").
		OrderBy("donor_id ASC"))
}

func (r *PgxDonorRepository) SearchDonors(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error) {
	sb := psql.Select(donorColumns...).From("donors")

	if filter.Query != nil {
		pattern := containsPattern(*filter.Query)
		matchAny := squirrel.Or{}
		for _, col := range donorSearchColumns {
			matchAny = append(matchAny, squirrel.ILike{col: pattern})
		}
		sb = sb.Where(matchAny)
	}
	if filter.BloodGroup != nil {
		sb = sb.Where(squirrel.Eq{"blood_group": string(*filter.BloodGroup)})
	}
	if filter.Area != nil {
		sb = sb.Where(squirrel.ILike{"area": containsPattern(*filter.Area)})
	}
	if filter.AgeMin != nil {
		sb = sb.Where(squirrel.GtOrEq{"age": *filter.AgeMin})
	}
	if filter.AgeMax != nil {
		sb = sb.Where(squirrel.LtOrEq{"age": *filter.AgeMax})
	}
	if filter.LastAfter != nil {
		sb = sb.Where(squirrel.GtOrEq{"last_donation_date": *filter.LastAfter})
	}
	if filter.LastBefore != nil {
		sb = sb.Where(squirrel.LtOrEq{"last_donation_date": *filter.LastBefore})
	}

	return r.queryDonors(ctx, sb.OrderBy("donor_id DESC").Limit(uint64(filter.Limit)))
}

func (r *PgxDonorRepository) SaveDonor(ctx context.Context, donor domain.Donor) (*domain.Donor, error) {
	m := mapping.ToModelDonor(donor)
	query, args, err := psql.Insert("donors").
		Columns(donorColumns[1:]...).
		Values(m.Name, m.NIC, m.Phone, m.Email, m.Address, m.Area,
			m.BloodGroup, m.Age, m.LastDonationDate, m.Notes, m.IsActive,
			m.CreatedAt, m.LastUpdatedAt).
		Suffix("RETURNING " + joinColumns(donorColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build donor insert: %w", err)
	}
	saved, err := scanDonor(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to save donor: %w", err)
	}
	d := mapping.ToDomainDonor(saved)
	return &d, nil
}

// UpdateDonorInTx overwrites the mutable columns of a donor locked by LockDonorForUpdate.
func (r *PgxDonorRepository) UpdateDonorInTx(ctx context.Context, tx pgx.Tx, donor domain.Donor) (*domain.Donor, error) {
	m := mapping.ToModelDonor(donor)
	query, args, err := psql.Update("donors").
		Set("name", m.Name).
		Set("nic", m.NIC).
		Set("phone", m.Phone).
		Set("email", m.Email).
		Set("address", m.Address).
		Set("area", m.Area).
		Set("blood_group", m.BloodGroup).
		Set("age", m.Age).
		Set("last_donation_date", m.LastDonationDate).
		Set("notes", m.Notes).
		Set("is_active", m.IsActive).
		Set("last_updated_at", m.LastUpdatedAt).
		Where(squirrel.Eq{"donor_id": m.DonorID}).
		Suffix("RETURNING " + joinColumns(donorColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build donor update: %w", err)
	}
	saved, err := scanDonor(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update donor %d: %w", donor.DonorID, err)
	}
	d := mapping.ToDomainDonor(saved)
	return &d, nil
}

func (r *PgxDonorRepository) DeleteDonor(ctx context.Context, donorID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM donors WHERE donor_id = $1;`, donorID)
	if err != nil {
		return fmt.Errorf("failed to delete donor %d: %w", donorID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
