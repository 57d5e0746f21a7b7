package checkout

import (
	"context"
	"errors"

	"github.com/tiendago/ventas-online/internal/model"
)

// ErrInsufficientStock is returned when a conditional stock decrement matches
// no row, either because the product vanished or a concurrent order won the
// remaining stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// Repository applies a complete order as one unit of work.
type Repository interface {
	// CreateOrder persists the invoice with its items, decrements each
	// product's stock iff the stock suffices, increments sold, records a
	// stock movement per line and clears the cart, all in one transaction.
	// Any failure rolls the whole order back.
	CreateOrder(ctx context.Context, inv *model.Invoice, cartID string) error
}
