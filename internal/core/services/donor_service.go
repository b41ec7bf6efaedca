package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	portsrepo "github.com/SscSPs/blood_desk_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
)

const (
	maxDonorListLimit = 500
	minDonorAge       = 0
	maxDonorAge       = 130
)

// donorService implements the DonorSvcFacade interface
type donorService struct {
	BaseService
	donorRepo portsrepo.DonorRepositoryWithTx
}

// DonorServiceOption is a functional option for configuring the donor service
type DonorServiceOption func(*donorService)

// WithDonorClock overrides the time source used for audit timestamps.
func WithDonorClock(clock func() time.Time) DonorServiceOption {
	return func(s *donorService) {
		s.clock = clock
	}
}

// NewDonorService creates a new donor directory service
func NewDonorService(repo portsrepo.DonorRepositoryWithTx, options ...DonorServiceOption) portssvc.DonorSvcFacade {
	svc := &donorService{donorRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DonorSvcFacade = (*donorService)(nil)

// trimOptional trims s and maps blank input to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func validateAge(age *int) error {
	if age != nil && (*age < minDonorAge || *age > maxDonorAge) {
		return fmt.Errorf("%w: age must be between %d and %d", apperrors.ErrValidation, minDonorAge, maxDonorAge)
	}
	return nil
}

func normalizeGroup(g domain.BloodGroup) (domain.BloodGroup, error) {
	parsed, err := domain.ParseBloodGroup(string(g))
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return parsed, nil
}

// normalizeDonor trims text fields and checks every invariant of a stored donor.
func normalizeDonor(d *domain.Donor) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	group, err := normalizeGroup(d.BloodGroup)
	if err != nil {
		return err
	}
	d.BloodGroup = group
	if err := validateAge(d.Age); err != nil {
		return err
	}
	d.NIC = trimOptional(d.NIC)
	d.Phone = trimOptional(d.Phone)
	d.Email = trimOptional(d.Email)
	d.Address = trimOptional(d.Address)
	d.Area = trimOptional(d.Area)
	d.Notes = trimOptional(d.Notes)
	return nil
}

func (s *donorService) CreateDonor(ctx context.Context, donor domain.Donor) (*domain.Donor, error) {
	if err := normalizeDonor(&donor); err != nil {
		s.LogDebug(ctx, "Rejected donor create", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.Now()
	donor.DonorID = 0
	donor.CreatedAt = now
	donor.LastUpdatedAt = now

	saved, err := s.donorRepo.SaveDonor(ctx, donor)
	if err != nil {
		s.LogError(ctx, err, "Failed to save donor")
		return nil, fmt.Errorf("failed to save donor: %w", err)
	}
	s.LogInfo(ctx, "Donor created", slog.Int64("donor_id", saved.DonorID))
	return saved, nil
}

func (s *donorService) GetDonor(ctx context.Context, donorID int64) (*domain.Donor, error) {
	donor, err := s.donorRepo.FindDonorByID(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get donor %d: %w", donorID, err)
	}
	return donor, nil
}

// validatePatch rejects clearing the attributes every donor must have.
func validatePatch(patch domain.DonorPatch) error {
	if patch.Name.IsNull() {
		return fmt.Errorf("%w: name cannot be cleared", apperrors.ErrValidation)
	}
	if patch.BloodGroup.IsNull() {
		return fmt.Errorf("%w: blood_group cannot be cleared", apperrors.ErrValidation)
	}
	if patch.Active.IsNull() {
		return fmt.Errorf("%w: active cannot be cleared", apperrors.ErrValidation)
	}
	return nil
}

// UpdateDonor applies patch to the donor while holding its row lock, so
// concurrent patches touching different fields never overwrite each other.
func (s *donorService) UpdateDonor(ctx context.Context, donorID int64, patch domain.DonorPatch) (*domain.Donor, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return s.GetDonor(ctx, donorID)
	}

	logger := s.GetLogger(ctx).With(slog.Int64("donor_id", donorID))
	tx, err := s.donorRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin donor transaction", slog.String("error", err.Error()))
		return nil, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := s.donorRepo.Rollback(ctx, tx); rbErr != nil {
			logger.Error("Failed to roll back donor transaction", slog.String("error", rbErr.Error()))
		}
	}()

	existing, err := s.donorRepo.LockDonorForUpdate(ctx, tx, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get donor %d: %w", donorID, err)
	}

	updated := *existing
	patch.Apply(&updated)
	if err := normalizeDonor(&updated); err != nil {
		return nil, err
	}
	updated.LastUpdatedAt = s.Now()

	saved, err := s.donorRepo.UpdateDonorInTx(ctx, tx, updated)
	if err != nil {
		logger.Error("Failed to update donor", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update donor %d: %w", donorID, err)
	}
	if err := s.donorRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit donor transaction", slog.String("error", err.Error()))
		return nil, err
	}
	committed = true

	logger.Info("Donor updated")
	return saved, nil
}

func (s *donorService) DeleteDonor(ctx context.Context, donorID int64) error {
	if err := s.donorRepo.DeleteDonor(ctx, donorID); err != nil {
		return fmt.Errorf("failed to delete donor %d: %w", donorID, err)
	}
	s.LogInfo(ctx, "Donor deleted", slog.Int64("donor_id", donorID))
	return nil
}

func clampDonorLimit(limit int) int {
	if limit <= 0 || limit > maxDonorListLimit {
		return maxDonorListLimit
	}
	return limit
}

func (s *donorService) ListDonors(ctx context.Context, limit int) ([]domain.Donor, error) {
	donors, err := s.donorRepo.ListDonors(ctx, clampDonorLimit(limit))
	if err != nil {
		s.LogError(ctx, err, "Failed to list donors")
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}
	return nonNilDonors(donors), nil
}

func (s *donorService) SearchDonors(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error) {
	filter.Query = trimOptional(filter.Query)
	filter.Area = trimOptional(filter.Area)
	if filter.IsEmpty() {
		return s.ListDonors(ctx, filter.Limit)
	}
	if filter.BloodGroup != nil {
		group, err := normalizeGroup(*filter.BloodGroup)
		if err != nil {
			return nil, err
		}
		filter.BloodGroup = &group
	}
	filter.Limit = clampDonorLimit(filter.Limit)

	donors, err := s.donorRepo.SearchDonors(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to search donors")
		return nil, fmt.Errorf("failed to search donors: %w", err)
	}
	return nonNilDonors(donors), nil
}

func (s *donorService) ListAllDonors(ctx context.Context) ([]domain.Donor, error) {
	donors, err := s.donorRepo.ListAllDonors(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list all donors")
		return nil, fmt.Errorf("failed to list all donors: %w", err)
	}
	return nonNilDonors(donors), nil
}

func nonNilDonors(donors []domain.Donor) []domain.Donor {
	if donors == nil {
		return []domain.Donor{}
	}
	return donors
}
