package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OKResponse acknowledges a mutation that returns no entity.
type OKResponse struct {
	OK bool `json:"ok"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// ListParams holds the optional page size of a listing.
type ListParams struct {
	Limit int `form:"limit"`
}

// AnalyticsParams holds the window of an analytics summary.
type AnalyticsParams struct {
	Days int `form:"days"`
}
