package repositories

import (
	"context"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DonorReader defines read operations for donor data
type DonorReader interface {
	// FindDonorByID retrieves a donor by id. Returns apperrors.ErrNotFound if absent.
	FindDonorByID(ctx context.Context, donorID int64) (*domain.Donor, error)

	// ListDonors returns up to limit donors, newest id first.
	ListDonors(ctx context.Context, limit int) ([]domain.Donor, error)

	// SearchDonors returns donors matching every set filter field, newest id first.
	SearchDonors(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error)

	// ListAllDonors returns every donor in ascending id order.
	ListAllDonors(ctx context.Context) ([]domain.Donor, error)
}

// DonorWriter defines write operations for donor data
type DonorWriter interface {
	// SaveDonor inserts a donor and returns it with its assigned id.
	SaveDonor(ctx context.Context, donor domain.Donor) (*domain.Donor, error)

	// DeleteDonor removes a donor. Returns apperrors.ErrNotFound if absent.
	DeleteDonor(ctx context.Context, donorID int64) error
}

// DonorTransactionSupport defines operations that run inside a caller-owned transaction
type DonorTransactionSupport interface {
	// LockDonorForUpdate reads a donor and locks its row until tx ends.
	// Returns apperrors.ErrNotFound if absent.
	LockDonorForUpdate(ctx context.Context, tx pgx.Tx, donorID int64) (*domain.Donor, error)

	// UpdateDonorInTx overwrites every mutable column of a locked donor.
	UpdateDonorInTx(ctx context.Context, tx pgx.Tx, donor domain.Donor) (*domain.Donor, error)
}

// DonorRepositoryFacade combines all donor-related repository interfaces
type DonorRepositoryFacade interface {
	DonorReader
	DonorWriter
	DonorTransactionSupport
}

// DonorRepositoryWithTx extends DonorRepositoryFacade with transaction capabilities
type DonorRepositoryWithTx interface {
	DonorRepositoryFacade
	TransactionManager
}
