package checkout

import (
	"context"

	"github.com/tiendago/ventas-online/internal/model"
)

type UseCase interface {
	// Checkout turns the caller's cart into an invoice, debiting stock and
	// emptying the cart. All-or-nothing: a failed line leaves no mutation.
	Checkout(ctx context.Context, userID string) (*model.Invoice, error)
}
