package domain

// StockSummary aggregates recent movement activity per UTC day.
type StockSummary struct {
	Stock     []StockLevel
	Donations map[string]int
	Issues    map[string]int
	LowStock  []BloodGroup
}
