package models

import "time"

// StockLevel mirrors a row of the stock_levels table.
type StockLevel struct {
	BloodGroup    string    `db:"blood_group"`
	Units         int32     `db:"units"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

// StockMovement mirrors a row of the append-only stock_movements table.
type StockMovement struct {
	MovementID int64     `db:"movement_id"`
	BloodGroup string    `db:"blood_group"`
	Delta      int32     `db:"delta"`
	Reason     string    `db:"reason"`
	CreatedAt  time.Time `db:"created_at"`
	UserID     *int64    `db:"user_id"`
}
