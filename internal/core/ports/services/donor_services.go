package services

import (
	"context"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
)

// DonorReaderSvc defines read operations on the donor directory
type DonorReaderSvc interface {
	GetDonor(ctx context.Context, donorID int64) (*domain.Donor, error)

	// ListDonors returns donors newest first. A non-positive limit selects the default.
	ListDonors(ctx context.Context, limit int) ([]domain.Donor, error)

	// SearchDonors returns donors matching every set filter; an empty filter behaves like ListDonors.
	SearchDonors(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error)

	// ListAllDonors returns every donor in ascending id order.
	ListAllDonors(ctx context.Context) ([]domain.Donor, error)
}

// DonorWriterSvc defines mutations of the donor directory
type DonorWriterSvc interface {
	CreateDonor(ctx context.Context, donor domain.Donor) (*domain.Donor, error)
	UpdateDonor(ctx context.Context, donorID int64, patch domain.DonorPatch) (*domain.Donor, error)
	DeleteDonor(ctx context.Context, donorID int64) error
}

// DonorSvcFacade combines all donor directory operations
type DonorSvcFacade interface {
	DonorReaderSvc
	DonorWriterSvc
}
