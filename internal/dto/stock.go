package dto

import (
	"time"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
)

// AdjustStockRequest applies a signed delta to one blood group.
type AdjustStockRequest struct {
	BloodGroup string `json:"blood_group"`
	Delta      int    `json:"delta"`
	Reason     string `json:"reason" example:"donation"`
}

// StockLevelResponse is the wire form of a stock level.
type StockLevelResponse struct {
	BloodGroup string    `json:"blood_group"`
	Units      int       `json:"units"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MovementResponse is the wire form of a stock movement.
type MovementResponse struct {
	ID         int64     `json:"id"`
	BloodGroup string    `json:"blood_group"`
	Delta      int       `json:"delta"`
	Reason     string    `json:"reason"`
	Timestamp  time.Time `json:"timestamp"`
	UserID     *int64    `json:"user_id"`
}

// StockListEnvelope wraps the levels of all groups.
type StockListEnvelope struct {
	Stock []StockLevelResponse `json:"stock"`
}

// AdjustStockResponse carries the new level and the recorded movement.
type AdjustStockResponse struct {
	Stock    StockLevelResponse `json:"stock"`
	Movement MovementResponse   `json:"movement"`
}

// MovementListEnvelope wraps a list of movements.
type MovementListEnvelope struct {
	Movements []MovementResponse `json:"movements"`
}

// ToDomain builds the adjustment. A group that does not parse is passed through
// unchanged so the ledger reports it in its own validation order.
func (r AdjustStockRequest) ToDomain(actorID *int64) domain.StockAdjustment {
	group, err := domain.ParseBloodGroup(r.BloodGroup)
	if err != nil {
		group = domain.BloodGroup(r.BloodGroup)
	}
	return domain.StockAdjustment{
		BloodGroup: group,
		Delta:      r.Delta,
		Reason:     domain.MovementReason(r.Reason),
		ActorID:    actorID,
	}
}

func ToStockLevelResponse(l domain.StockLevel) StockLevelResponse {
	return StockLevelResponse{BloodGroup: string(l.BloodGroup), Units: l.Units, UpdatedAt: l.UpdatedAt}
}

func ToStockListResponse(levels []domain.StockLevel) []StockLevelResponse {
	out := make([]StockLevelResponse, len(levels))
	for i, l := range levels {
		out[i] = ToStockLevelResponse(l)
	}
	return out
}

func ToMovementResponse(m domain.StockMovement) MovementResponse {
	return MovementResponse{
		ID:         m.MovementID,
		BloodGroup: string(m.BloodGroup),
		Delta:      m.Delta,
		Reason:     string(m.Reason),
		Timestamp:  m.Timestamp,
		UserID:     m.UserID,
	}
}

func ToMovementListResponse(movements []domain.StockMovement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i, m := range movements {
		out[i] = ToMovementResponse(m)
	}
	return out
}
