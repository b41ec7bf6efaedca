package domain

import "time"

// DateLayout is the wire format for calendar dates (last donation, search bounds).
const DateLayout = "2006-01-02"

// AuditFields holds the timestamps every mutable record carries.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
