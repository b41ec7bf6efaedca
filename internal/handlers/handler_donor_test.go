package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/SscSPs/blood_desk_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func sampleDonor() *domain.Donor {
	age := 30
	area := "North"
	last := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return &domain.Donor{
		DonorID:          12,
		Name:             "Ann",
		Area:             &area,
		BloodGroup:       domain.GroupOPos,
		Age:              &age,
		LastDonationDate: &last,
		Active:           true,
		AuditFields:      domain.AuditFields{CreatedAt: fixedNow, LastUpdatedAt: fixedNow},
	}
}

func (s *HandlerTestSuite) TestCreateDonor_Success() {
	matches := mock.MatchedBy(func(d domain.Donor) bool {
		return d.Name == "Ann" && d.BloodGroup == "o+" && d.Age != nil && *d.Age == 30 &&
			d.LastDonationDate != nil && d.LastDonationDate.Format(domain.DateLayout) == "2024-01-02" &&
			d.Active
	})
	s.donors.On("CreateDonor", mockCtx, matches).Return(sampleDonor(), nil).Once()

	w := s.do(http.MethodPost, "/api/donors", map[string]any{
		"name":               "Ann",
		"blood_group":        "o+",
		"age":                30,
		"last_donation_date": "2024-01-02",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp dto.DonorEnvelope
	s.decode(w, &resp)
	s.Equal(int64(12), resp.Donor.ID)
	s.Equal("O+", resp.Donor.BloodGroup)
	s.Require().NotNil(resp.Donor.LastDonationDate)
	s.Equal("2024-01-02", *resp.Donor.LastDonationDate)
	s.Nil(resp.Donor.Phone)
}

func (s *HandlerTestSuite) TestCreateDonor_RejectedBeforeService() {
	testCases := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"blood_group": "A+"}},
		{"unknown blood group", map[string]any{"name": "Ann", "blood_group": "C+"}},
		{"age out of range", map[string]any{"name": "Ann", "blood_group": "A+", "age": 200}},
		{"malformed date", map[string]any{"name": "Ann", "blood_group": "A+", "last_donation_date": "02/01/2024"}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w := s.do(http.MethodPost, "/api/donors", tc.body)
			s.Equal(http.StatusBadRequest, w.Code)
		})
	}
	s.donors.AssertNotCalled(s.T(), "CreateDonor", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestCreateDonor_ServiceValidation() {
	s.donors.On("CreateDonor", mockCtx, mock.Anything).
		Return(nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)).Once()

	w := s.do(http.MethodPost, "/api/donors", map[string]any{"name": "   ", "blood_group": "A+"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorMessage(w), "name is required")
}

func (s *HandlerTestSuite) TestGetDonor() {
	s.donors.On("GetDonor", mockCtx, int64(12)).Return(sampleDonor(), nil).Once()
	s.donors.On("GetDonor", mockCtx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	w := s.do(http.MethodGet, "/api/donors/12", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/donors/99", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/donors/abc", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestListDonors_PassesLimit() {
	s.donors.On("ListDonors", mockCtx, 10).Return([]domain.Donor{*sampleDonor()}, nil).Once()

	w := s.do(http.MethodGet, "/api/donors?limit=10", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.DonorListEnvelope
	s.decode(w, &resp)
	s.Len(resp.Donors, 1)
}

func (s *HandlerTestSuite) TestListDonors_EmptyIsArray() {
	s.donors.On("ListDonors", mockCtx, 0).Return([]domain.Donor{}, nil).Once()

	w := s.do(http.MethodGet, "/api/donors", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"donors":[]}`, w.Body.String())
}

func (s *HandlerTestSuite) TestListDonors_StoreFailureCarriesMessage() {
	s.donors.On("ListDonors", mockCtx, 0).Return(nil, fmt.Errorf("connection reset")).Once()

	w := s.do(http.MethodGet, "/api/donors", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("connection reset", s.errorMessage(w))
}

func (s *HandlerTestSuite) TestSearchDonors_BuildsFilter() {
	matches := mock.MatchedBy(func(f domain.DonorFilter) bool {
		return f.Query != nil && *f.Query == "ann" &&
			f.BloodGroup != nil && *f.BloodGroup == domain.GroupAPos &&
			f.AgeMin != nil && *f.AgeMin == 20 && f.AgeMax == nil &&
			f.LastBefore != nil && f.LastBefore.Format(domain.DateLayout) == "2024-03-01" &&
			f.Area == nil && f.LastAfter == nil
	})
	s.donors.On("SearchDonors", mockCtx, matches).Return([]domain.Donor{}, nil).Once()

	w := s.do(http.MethodGet, "/api/donors/search?q=ann&blood_group=a%2B&age_min=20&last_before=2024-03-01", nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *HandlerTestSuite) TestSearchDonors_InvalidFilters() {
	w := s.do(http.MethodGet, "/api/donors/search?blood_group=Q", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/donors/search?last_after=yesterday", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/donors/search?age_min=old", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestUpdateDonor_PatchSemantics() {
	matches := mock.MatchedBy(func(p domain.DonorPatch) bool {
		area, ok := p.Area.Get()
		return p.Phone.IsNull() && ok && area == "South" && !p.Name.Set && !p.BloodGroup.Set
	})
	s.donors.On("UpdateDonor", mockCtx, int64(12), matches).Return(sampleDonor(), nil).Once()

	w := s.do(http.MethodPut, "/api/donors/12", `{"phone":null,"area":"South"}`)
	s.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *HandlerTestSuite) TestUpdateDonor_Errors() {
	s.donors.On("UpdateDonor", mockCtx, int64(404), mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	w := s.do(http.MethodPut, "/api/donors/404", `{"name":"Bob"}`)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, "/api/donors/12", `{"blood_group":"XY"}`)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/donors/12", `{"last_donation_date":"soon"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestDeleteDonor() {
	s.donors.On("DeleteDonor", mockCtx, int64(12)).Return(nil).Once()
	s.donors.On("DeleteDonor", mockCtx, int64(13)).Return(apperrors.ErrNotFound).Once()

	w := s.do(http.MethodDelete, "/api/donors/12", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"ok":true}`, w.Body.String())

	w = s.do(http.MethodDelete, "/api/donors/13", nil)
	s.Equal(http.StatusNotFound, w.Code)
}
