package cart

import (
	"context"

	"github.com/tiendago/ventas-online/internal/model"
)

type Repository interface {
	// FindByUser returns the cart with its line items, or nil when the user
	// never created one.
	FindByUser(ctx context.Context, userID string) (*model.Cart, error)
	Create(ctx context.Context, c *model.Cart) error
	// AddItem inserts the line or adds qty to an existing line's quantity.
	AddItem(ctx context.Context, cartID, productID string, qty int) error
	// SetItemQuantity replaces the quantity of an existing line. Returns
	// false when the line does not exist.
	SetItemQuantity(ctx context.Context, cartID, productID string, qty int) (bool, error)
	RemoveItem(ctx context.Context, cartID, productID string) error
	ClearItems(ctx context.Context, cartID string) error
}
