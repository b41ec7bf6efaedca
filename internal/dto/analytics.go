package dto

import "github.com/SscSPs/blood_desk_app/internal/core/domain"

// AnalyticsSummaryResponse reports per-day movement totals and current stock.
type AnalyticsSummaryResponse struct {
	Stock     []StockLevelResponse `json:"stock"`
	Donations map[string]int       `json:"donations"`
	Issues    map[string]int       `json:"issues"`
	LowStock  []string             `json:"low_stock"`
}

// ToAnalyticsSummaryResponse converts a domain summary to its wire form.
func ToAnalyticsSummaryResponse(s domain.StockSummary) AnalyticsSummaryResponse {
	low := make([]string, len(s.LowStock))
	for i, g := range s.LowStock {
		low[i] = string(g)
	}
	return AnalyticsSummaryResponse{
		Stock:     ToStockListResponse(s.Stock),
		Donations: s.Donations,
		Issues:    s.Issues,
		LowStock:  low,
	}
}
