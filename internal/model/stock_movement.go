package model

import "time"

const (
	MovementSale       = "sale"
	MovementReversal   = "reversal"
	MovementAdjustment = "adjustment"
)

// StockMovement is an append-only audit row written in the same transaction
// as the stock change it records.
type StockMovement struct {
	ID             string    `db:"id"`
	ProductID      string    `db:"product_id"`
	MovementType   string    `db:"movement_type"`
	QuantityChange int       `db:"quantity_change"`
	QuantityBefore int       `db:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after"`
	ReferenceID    *string   `db:"reference_id"`
	CreatedBy      *string   `db:"created_by"`
	CreatedAt      time.Time `db:"created_at"`
}
