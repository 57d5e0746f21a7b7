package invoice

import (
	"context"

	"github.com/tiendago/ventas-online/internal/model"
)

type Repository interface {
	// FindAll returns invoices newest first, optionally filtered by user.
	FindAll(ctx context.Context, userID *string) ([]*model.Invoice, error)
	FindByID(ctx context.Context, id string) (*model.Invoice, error)

	// Create inserts the invoice and its items, debiting product stock for
	// every line inside one transaction.
	Create(ctx context.Context, inv *model.Invoice) error

	// Update applies a status change and, when replaceItems is set, swaps the
	// invoice lines: old items are credited back to stock and the new ones
	// conditionally debited, all in one transaction.
	Update(ctx context.Context, inv *model.Invoice, oldItems []model.InvoiceItem, replaceItems bool) error
}
