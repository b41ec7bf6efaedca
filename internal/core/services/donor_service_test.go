package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/SscSPs/blood_desk_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DonorServiceTestSuite struct {
	suite.Suite
	mockRepo *MockDonorRepository
	service  portssvc.DonorSvcFacade
	ctx      context.Context
}

func (suite *DonorServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDonorRepository)
	suite.service = services.NewDonorService(suite.mockRepo, services.WithDonorClock(fixedClock))
	suite.ctx = context.Background()
}

func TestDonorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DonorServiceTestSuite))
}

func sampleDonor() *domain.Donor {
	last := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	created := fixedNow.Add(-48 * time.Hour)
	return &domain.Donor{
		DonorID:          4,
		Name:             "Ayesha Fernando",
		Phone:            stringPtr("0711111111"),
		Email:            stringPtr("ayesha@example.com"),
		Area:             stringPtr("Negombo"),
		BloodGroup:       domain.GroupAPos,
		Age:              intPtr(31),
		LastDonationDate: &last,
		Active:           true,
		AuditFields:      domain.AuditFields{CreatedAt: created, LastUpdatedAt: created},
	}
}

func (suite *DonorServiceTestSuite) TestCreateDonor_NormalizesAndStamps() {
	input := domain.Donor{
		Name:       "  Ruwan Silva ",
		Phone:      stringPtr("  "),
		Area:       stringPtr(" Matara "),
		BloodGroup: " b- ",
		Age:        intPtr(45),
		Active:     true,
	}
	suite.mockRepo.On("SaveDonor", suite.ctx, mock.MatchedBy(func(d domain.Donor) bool {
		return d.Name == "Ruwan Silva" &&
			d.Phone == nil &&
			*d.Area == "Matara" &&
			d.BloodGroup == domain.GroupBNeg &&
			d.CreatedAt.Equal(fixedNow) &&
			d.LastUpdatedAt.Equal(fixedNow)
	})).Return(&domain.Donor{DonorID: 9, Name: "Ruwan Silva", BloodGroup: domain.GroupBNeg, Active: true}, nil).Once()

	saved, err := suite.service.CreateDonor(suite.ctx, input)

	suite.Require().NoError(err)
	suite.Equal(int64(9), saved.DonorID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DonorServiceTestSuite) TestCreateDonor_ValidationErrors() {
	tests := []struct {
		name  string
		donor domain.Donor
	}{
		{name: "missing name", donor: domain.Donor{Name: "   ", BloodGroup: domain.GroupOPos}},
		{name: "bad blood group", donor: domain.Donor{Name: "A", BloodGroup: "C+"}},
		{name: "negative age", donor: domain.Donor{Name: "A", BloodGroup: domain.GroupOPos, Age: intPtr(-1)}},
		{name: "age too high", donor: domain.Donor{Name: "A", BloodGroup: domain.GroupOPos, Age: intPtr(131)}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.CreateDonor(suite.ctx, tt.donor)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveDonor", mock.Anything, mock.Anything)
}

func (suite *DonorServiceTestSuite) TestCreateDonor_AgeBoundsAccepted() {
	suite.mockRepo.On("SaveDonor", suite.ctx, mock.Anything).Return(&domain.Donor{DonorID: 1}, nil).Twice()

	_, err := suite.service.CreateDonor(suite.ctx, domain.Donor{Name: "Baby", BloodGroup: domain.GroupOPos, Age: intPtr(0)})
	suite.NoError(err)
	_, err = suite.service.CreateDonor(suite.ctx, domain.Donor{Name: "Elder", BloodGroup: domain.GroupOPos, Age: intPtr(130)})
	suite.NoError(err)
}

func (suite *DonorServiceTestSuite) TestGetDonor_NotFound() {
	suite.mockRepo.On("FindDonorByID", suite.ctx, int64(77)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetDonor(suite.ctx, 77)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DonorServiceTestSuite) TestUpdateDonor_AppliesPatchUnderRowLock() {
	existing := sampleDonor()
	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("LockDonorForUpdate", suite.ctx, mock.Anything, int64(4)).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateDonorInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(d domain.Donor) bool {
		return d.DonorID == 4 &&
			d.Name == "Ayesha Fernando" &&
			d.Email == nil &&
			*d.Area == "Kandy" &&
			*d.Age == 32 &&
			d.LastUpdatedAt.Equal(fixedNow) &&
			!d.CreatedAt.Equal(fixedNow)
	})).Return(existing, nil).Once()
	suite.mockRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.UpdateDonor(suite.ctx, 4, domain.DonorPatch{
		Email: domain.Null[string](),
		Area:  domain.Some("Kandy"),
		Age:   domain.Some(32),
	})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "FindDonorByID", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
	suite.Equal("ayesha@example.com", *existing.Email, "stored record must not be mutated in place")
}

func (suite *DonorServiceTestSuite) TestUpdateDonor_EmptyPatchReadsWithoutLocking() {
	suite.mockRepo.On("FindDonorByID", suite.ctx, int64(4)).Return(sampleDonor(), nil).Once()

	donor, err := suite.service.UpdateDonor(suite.ctx, 4, domain.DonorPatch{})

	suite.Require().NoError(err)
	suite.Equal(int64(4), donor.DonorID)
	suite.mockRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *DonorServiceTestSuite) TestUpdateDonor_RejectsClearingRequiredFields() {
	patches := map[string]domain.DonorPatch{
		"name":        {Name: domain.Null[string]()},
		"blood_group": {BloodGroup: domain.Null[domain.BloodGroup]()},
		"active":      {Active: domain.Null[bool]()},
		"empty name":  {Name: domain.Some("  ")},
		"bad group":   {BloodGroup: domain.Some(domain.BloodGroup("Z"))},
	}
	for name, patch := range patches {
		suite.Run(name, func() {
			suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Maybe()
			suite.mockRepo.On("LockDonorForUpdate", suite.ctx, mock.Anything, int64(4)).Return(sampleDonor(), nil).Maybe()
			suite.mockRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil).Maybe()
			_, err := suite.service.UpdateDonor(suite.ctx, 4, patch)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDonorInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *DonorServiceTestSuite) TestUpdateDonor_NotFoundRollsBack() {
	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("LockDonorForUpdate", suite.ctx, mock.Anything, int64(5)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.UpdateDonor(suite.ctx, 5, domain.DonorPatch{Area: domain.Some("Jaffna")})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *DonorServiceTestSuite) TestDeleteDonor() {
	suite.mockRepo.On("DeleteDonor", suite.ctx, int64(4)).Return(nil).Once()
	suite.mockRepo.On("DeleteDonor", suite.ctx, int64(5)).Return(apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.DeleteDonor(suite.ctx, 4))
	suite.ErrorIs(suite.service.DeleteDonor(suite.ctx, 5), apperrors.ErrNotFound)
}

func (suite *DonorServiceTestSuite) TestListDonors_ClampsLimit() {
	suite.mockRepo.On("ListDonors", suite.ctx, 500).Return(nil, nil).Twice()
	suite.mockRepo.On("ListDonors", suite.ctx, 10).Return([]domain.Donor{*sampleDonor()}, nil).Once()

	donors, err := suite.service.ListDonors(suite.ctx, 0)
	suite.Require().NoError(err)
	suite.NotNil(donors)

	_, err = suite.service.ListDonors(suite.ctx, 10000)
	suite.Require().NoError(err)

	donors, err = suite.service.ListDonors(suite.ctx, 10)
	suite.Require().NoError(err)
	suite.Len(donors, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DonorServiceTestSuite) TestSearchDonors_NoFiltersFallsBackToList() {
	suite.mockRepo.On("ListDonors", suite.ctx, 500).Return([]domain.Donor{}, nil).Once()

	_, err := suite.service.SearchDonors(suite.ctx, domain.DonorFilter{Query: stringPtr("   ")})

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "SearchDonors", mock.Anything, mock.Anything)
}

func (suite *DonorServiceTestSuite) TestSearchDonors_NormalizesFilter() {
	group := domain.BloodGroup("ab+")
	suite.mockRepo.On("SearchDonors", suite.ctx, mock.MatchedBy(func(f domain.DonorFilter) bool {
		return *f.Query == "perera" && *f.BloodGroup == domain.GroupABPos && f.Limit == 500
	})).Return([]domain.Donor{*sampleDonor()}, nil).Once()

	donors, err := suite.service.SearchDonors(suite.ctx, domain.DonorFilter{Query: stringPtr(" perera "), BloodGroup: &group})

	suite.Require().NoError(err)
	suite.Len(donors, 1)
}

func (suite *DonorServiceTestSuite) TestSearchDonors_InvalidGroup() {
	group := domain.BloodGroup("Q")

	_, err := suite.service.SearchDonors(suite.ctx, domain.DonorFilter{BloodGroup: &group})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, apperrors.ErrInvalidGroup)
}
