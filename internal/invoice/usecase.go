package invoice

import (
	"context"

	"github.com/tiendago/ventas-online/internal/invoice/dto"
	"github.com/tiendago/ventas-online/internal/model"
)

type UseCase interface {
	ListInvoices(ctx context.Context, userID *string) ([]*model.Invoice, error)
	GetInvoice(ctx context.Context, caller *model.User, id string) (*model.Invoice, error)
	CreateInvoice(ctx context.Context, input *dto.CreateInvoiceInput) (*model.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, input *dto.UpdateInvoiceInput) (*model.Invoice, error)
	ListUserPurchases(ctx context.Context, userID string) ([]*model.Invoice, error)

	// DownloadInvoice renders the invoice as a PDF, enforcing the same
	// owner-or-admin rule as GetInvoice. It returns the suggested file name
	// and the document bytes.
	DownloadInvoice(ctx context.Context, caller *model.User, id string) (string, []byte, error)
}
