package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tiendago/ventas-online/internal/checkout"
	"github.com/tiendago/ventas-online/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// CreateOrder runs the whole order in one transaction. The conditional
// UPDATE closes the check-then-act window: a concurrent order that already
// took the stock makes the decrement match no row, which aborts and rolls
// back this order entirely.
func (r *PGRepository) CreateOrder(ctx context.Context, inv *model.Invoice, cartID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range inv.Items {
		if err := DebitStock(ctx, tx, item.ProductID, item.Quantity, inv.ID, inv.UserID); err != nil {
			return err
		}
	}

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO invoices (id, user_id, total, status, created_at, updated_at)
        VALUES (:id, :user_id, :total, :status, :created_at, :updated_at)
    `, inv)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	for _, item := range inv.Items {
		_, err = tx.ExecContext(ctx, `
            INSERT INTO invoice_items (invoice_id, product_id, quantity, price)
            VALUES ($1, $2, $3, $4)
        `, item.InvoiceID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return tx.Commit()
}

// DebitStock decrements stock iff sufficient, increments sold and records
// the movement. Exported for the invoice-update workflow, which shares the
// same transaction discipline.
func DebitStock(ctx context.Context, tx *sqlx.Tx, productID string, qty int, referenceID, createdBy string) error {
	var stockAfter int
	err := tx.QueryRowxContext(ctx, `
        UPDATE products
        SET stock = stock - $1, sold = sold + $1, updated_at = NOW()
        WHERE id = $2 AND stock >= $1
        RETURNING stock
    `, qty, productID).Scan(&stockAfter)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("product %s: %w", productID, checkout.ErrInsufficientStock)
		}
		return fmt.Errorf("failed to debit stock for product %s: %w", productID, err)
	}

	return logMovement(ctx, tx, &model.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		MovementType:   model.MovementSale,
		QuantityChange: -qty,
		QuantityBefore: stockAfter + qty,
		QuantityAfter:  stockAfter,
		ReferenceID:    &referenceID,
		CreatedBy:      &createdBy,
		CreatedAt:      time.Now(),
	})
}

// CreditStock reverses a previous debit. sold never drops below zero.
func CreditStock(ctx context.Context, tx *sqlx.Tx, productID string, qty int, referenceID, createdBy string) error {
	var stockAfter int
	err := tx.QueryRowxContext(ctx, `
        UPDATE products
        SET stock = stock + $1, sold = GREATEST(sold - $1, 0), updated_at = NOW()
        WHERE id = $2
        RETURNING stock
    `, qty, productID).Scan(&stockAfter)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Product was hard-deleted after the sale, nothing to restore.
			return nil
		}
		return fmt.Errorf("failed to credit stock for product %s: %w", productID, err)
	}

	return logMovement(ctx, tx, &model.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		MovementType:   model.MovementReversal,
		QuantityChange: qty,
		QuantityBefore: stockAfter - qty,
		QuantityAfter:  stockAfter,
		ReferenceID:    &referenceID,
		CreatedBy:      &createdBy,
		CreatedAt:      time.Now(),
	})
}

func logMovement(ctx context.Context, tx *sqlx.Tx, m *model.StockMovement) error {
	_, err := tx.NamedExecContext(ctx, `
        INSERT INTO stock_movements (
            id, product_id, movement_type, quantity_change,
            quantity_before, quantity_after, reference_id, created_by, created_at
        )
        VALUES (
            :id, :product_id, :movement_type, :quantity_change,
            :quantity_before, :quantity_after, :reference_id, :created_by, :created_at
        )
    `, m)
	if err != nil {
		return fmt.Errorf("failed to log stock movement: %w", err)
	}
	return nil
}
