package mapping

import (
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/SscSPs/blood_desk_app/internal/models"
)

// ToDomainStockLevel converts a model StockLevel to a domain StockLevel
func ToDomainStockLevel(m models.StockLevel) domain.StockLevel {
	return domain.StockLevel{
		BloodGroup: domain.BloodGroup(m.BloodGroup),
		Units:      int(m.Units),
		UpdatedAt:  m.LastUpdatedAt,
	}
}

// ToModelStockMovement converts a domain StockMovement to a model StockMovement
func ToModelStockMovement(d domain.StockMovement) models.StockMovement {
	return models.StockMovement{
		MovementID: d.MovementID,
		BloodGroup: string(d.BloodGroup),
		Delta:      int32(d.Delta),
		Reason:     string(d.Reason),
		CreatedAt:  d.Timestamp,
		UserID:     d.UserID,
	}
}

// ToDomainStockMovement converts a model StockMovement to a domain StockMovement
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		MovementID: m.MovementID,
		BloodGroup: domain.BloodGroup(m.BloodGroup),
		Delta:      int(m.Delta),
		Reason:     domain.MovementReason(m.Reason),
		Timestamp:  m.CreatedAt,
		UserID:     m.UserID,
	}
}

// ToDomainStockMovementSlice converts a slice of model StockMovements to a slice of domain StockMovements
func ToDomainStockMovementSlice(ms []models.StockMovement) []domain.StockMovement {
	ds := make([]domain.StockMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockMovement(m)
	}
	return ds
}
