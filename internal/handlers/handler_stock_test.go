package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/SscSPs/blood_desk_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (s *HandlerTestSuite) TestGetStock() {
	levels := make([]domain.StockLevel, 0, 8)
	for _, g := range domain.AllBloodGroups() {
		levels = append(levels, domain.StockLevel{BloodGroup: g, Units: 4, UpdatedAt: fixedNow})
	}
	s.stock.On("GetLevels", mockCtx).Return(levels, nil).Once()

	w := s.do(http.MethodGet, "/api/stock", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.StockListEnvelope
	s.decode(w, &resp)
	s.Require().Len(resp.Stock, 8)
	s.Equal("O+", resp.Stock[0].BloodGroup)
	s.Equal("AB-", resp.Stock[7].BloodGroup)
}

func (s *HandlerTestSuite) TestGetStock_StoreFailureIs400() {
	s.stock.On("GetLevels", mockCtx).Return(nil, errors.New("db down")).Once()

	w := s.do(http.MethodGet, "/api/stock", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("db down", s.errorMessage(w))
}

func (s *HandlerTestSuite) TestAdjustStock_RecordsActor() {
	expected := domain.StockAdjustment{
		BloodGroup: domain.GroupAPos,
		Delta:      3,
		Reason:     domain.ReasonDonation,
		ActorID:    func() *int64 { id := testUserID; return &id }(),
	}
	level := &domain.StockLevel{BloodGroup: domain.GroupAPos, Units: 8, UpdatedAt: fixedNow}
	movement := &domain.StockMovement{MovementID: 41, BloodGroup: domain.GroupAPos, Delta: 3, Reason: domain.ReasonDonation, Timestamp: fixedNow, UserID: expected.ActorID}
	s.stock.On("Adjust", mockCtx, expected).Return(level, movement, nil).Once()

	w := s.do(http.MethodPost, "/api/stock/adjust", dto.AdjustStockRequest{BloodGroup: "a+", Delta: 3, Reason: "donation"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.AdjustStockResponse
	s.decode(w, &resp)
	s.Equal(8, resp.Stock.Units)
	s.Equal(int64(41), resp.Movement.ID)
	s.Require().NotNil(resp.Movement.UserID)
	s.Equal(testUserID, *resp.Movement.UserID)
}

func (s *HandlerTestSuite) TestAdjustStock_Errors() {
	testCases := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{"insufficient", fmt.Errorf("%w: O- has 1 units", apperrors.ErrInsufficientStock), http.StatusBadRequest, "insufficient"},
		{"invalid group", apperrors.ErrInvalidGroup, http.StatusBadRequest, ""},
		{"zero delta", apperrors.ErrInvalidDelta, http.StatusBadRequest, ""},
		{"unexpected failure on mutation", errors.New("deadlock detected"), http.StatusBadRequest, "deadlock detected"},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.stock.On("Adjust", mockCtx, mock.Anything).Return(nil, nil, tc.serviceErr).Once()

			w := s.do(http.MethodPost, "/api/stock/adjust", dto.AdjustStockRequest{BloodGroup: "O-", Delta: -2, Reason: "issue"})
			s.Equal(tc.wantStatus, w.Code)
			s.True(strings.Contains(strings.ToLower(s.errorMessage(w)), tc.wantMsg))
			s.stock.AssertExpectations(s.T())
		})
	}
}

func (s *HandlerTestSuite) TestAdjustStock_UnparsableGroupPassedThrough() {
	matches := mock.MatchedBy(func(a domain.StockAdjustment) bool {
		return a.BloodGroup == "Z+" && a.Delta == 0
	})
	s.stock.On("Adjust", mockCtx, matches).Return(nil, nil, apperrors.ErrInvalidGroup).Once()

	w := s.do(http.MethodPost, "/api/stock/adjust", `{"blood_group":"Z+"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestAdjustStock_GroupSpellings() {
	testCases := []struct {
		input string
		want  domain.BloodGroup
	}{
		{"o+", domain.GroupOPos},
		{" AB- ", domain.GroupABNeg},
		{"b-", domain.GroupBNeg},
		{"0+", "0+"},
		{"O +", "O +"},
		{"A", "A"},
	}
	for _, tc := range testCases {
		s.Run(tc.input, func() {
			s.SetupTest()
			matches := mock.MatchedBy(func(a domain.StockAdjustment) bool {
				return a.BloodGroup == tc.want && a.Delta == 1
			})
			if tc.want.IsValid() {
				s.stock.On("Adjust", mockCtx, matches).Return(
					&domain.StockLevel{BloodGroup: tc.want, Units: 1, UpdatedAt: fixedNow},
					&domain.StockMovement{MovementID: 1, BloodGroup: tc.want, Delta: 1, Reason: domain.ReasonAdjust, Timestamp: fixedNow},
					nil).Once()
			} else {
				s.stock.On("Adjust", mockCtx, matches).Return(nil, nil, apperrors.ErrInvalidGroup).Once()
			}

			w := s.do(http.MethodPost, "/api/stock/adjust", dto.AdjustStockRequest{BloodGroup: tc.input, Delta: 1})
			if tc.want.IsValid() {
				s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
				var resp dto.AdjustStockResponse
				s.decode(w, &resp)
				s.Equal(string(tc.want), resp.Stock.BloodGroup)
			} else {
				s.Equal(http.StatusBadRequest, w.Code)
			}
			s.stock.AssertExpectations(s.T())
		})
	}
}

func (s *HandlerTestSuite) TestListMovements() {
	s.stock.On("ListMovements", mockCtx, 5).Return([]domain.StockMovement{
		{MovementID: 2, BloodGroup: domain.GroupBNeg, Delta: -1, Reason: domain.ReasonIssue, Timestamp: fixedNow},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/stock/movements?limit=5", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.MovementListEnvelope
	s.decode(w, &resp)
	s.Require().Len(resp.Movements, 1)
	s.Equal(-1, resp.Movements[0].Delta)
	s.Nil(resp.Movements[0].UserID)
}
