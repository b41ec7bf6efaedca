package handlers_test

import (
	"net/http"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/SscSPs/blood_desk_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (s *HandlerTestSuite) TestAnalyticsSummary() {
	summary := &domain.StockSummary{
		Stock:     []domain.StockLevel{{BloodGroup: domain.GroupONeg, Units: 2, UpdatedAt: fixedNow}},
		Donations: map[string]int{"2024-06-14": 5},
		Issues:    map[string]int{"2024-06-15": 3},
		LowStock:  []domain.BloodGroup{domain.GroupONeg},
	}
	s.analytics.On("Summary", mockCtx, 7).Return(summary, nil).Once()

	w := s.do(http.MethodGet, "/api/analytics/summary?days=7", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.AnalyticsSummaryResponse
	s.decode(w, &resp)
	s.Equal(5, resp.Donations["2024-06-14"])
	s.Equal(3, resp.Issues["2024-06-15"])
	s.Equal([]string{"O-"}, resp.LowStock)
}

func (s *HandlerTestSuite) TestExportDonorsCSV() {
	s.export.On("WriteDonorsCSV", mockCtx, mock.Anything).Return("id,name\n1,Ann\n", nil).Once()

	w := s.do(http.MethodGet, "/api/export/donors.csv", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "text/csv")
	s.Contains(w.Header().Get("Content-Disposition"), `filename="donors.csv"`)
	s.Equal("id,name\n1,Ann\n", w.Body.String())
}
