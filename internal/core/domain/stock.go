package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
)

// DefaultLowStockThreshold is the unit count below which a group is reported as low.
const DefaultLowStockThreshold = 5

// MovementReason classifies a stock movement.
type MovementReason string

const (
	ReasonDonation MovementReason = "donation"
	ReasonIssue    MovementReason = "issue"
	ReasonDiscard  MovementReason = "discard"
	ReasonAdjust   MovementReason = "adjust"
)

// MovementReasons lists the accepted reasons.
func MovementReasons() []MovementReason {
	return []MovementReason{ReasonDonation, ReasonIssue, ReasonDiscard, ReasonAdjust}
}

// ParseMovementReason accepts one of the enumerated reasons; an empty string means ReasonAdjust.
func ParseMovementReason(s string) (MovementReason, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ReasonAdjust, nil
	}
	for _, r := range MovementReasons() {
		if MovementReason(s) == r {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown movement reason %q", apperrors.ErrValidation, s)
}

// StockLevel is the on-hand unit count for one blood group. Units is never negative.
type StockLevel struct {
	BloodGroup BloodGroup `json:"bloodGroup"`
	Units      int        `json:"units"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// IsLow reports whether the level sits below threshold.
func (l StockLevel) IsLow(threshold int) bool {
	return l.Units < threshold
}

// StockMovement is an immutable audit entry for a single stock change.
type StockMovement struct {
	MovementID int64          `json:"movementID"`
	BloodGroup BloodGroup     `json:"bloodGroup"`
	Delta      int            `json:"delta"`
	Reason     MovementReason `json:"reason"`
	Timestamp  time.Time      `json:"timestamp"`
	UserID     *int64         `json:"userID,omitempty"`
}

// StockAdjustment is a validated request to change a group's units.
type StockAdjustment struct {
	BloodGroup BloodGroup
	Delta      int
	Reason     MovementReason
	ActorID    *int64
}
