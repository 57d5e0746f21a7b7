package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tiendago/ventas-online/internal/checkout"
	"github.com/tiendago/ventas-online/internal/invoice"
	"github.com/tiendago/ventas-online/internal/invoice/dto"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

// ProductBatchFinder is the slice of the product repository invoice editing needs.
type ProductBatchFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// UserFinder validates the buyer on explicit invoice creation.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type invoiceUseCase struct {
	repo     invoice.Repository
	products ProductBatchFinder
	users    UserFinder
	logger   *zap.Logger
}

func NewInvoiceUseCase(repo invoice.Repository, products ProductBatchFinder, users UserFinder, log *zap.Logger) invoice.UseCase {
	return &invoiceUseCase{
		repo:     repo,
		products: products,
		users:    users,
		logger:   log,
	}
}

func (uc *invoiceUseCase) ListInvoices(ctx context.Context, userID *string) ([]*model.Invoice, error) {
	invoices, err := uc.repo.FindAll(ctx, userID)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to list invoices")
	}
	return invoices, nil
}

func (uc *invoiceUseCase) GetInvoice(ctx context.Context, caller *model.User, id string) (*model.Invoice, error) {
	inv, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to get invoice")
	}
	if inv == nil {
		return nil, httperrors.NewNotFound("invoice not found")
	}
	if !caller.IsAdmin() && inv.UserID != caller.ID {
		return nil, httperrors.NewForbidden("you cannot access another user's invoice")
	}
	return inv, nil
}

func (uc *invoiceUseCase) ListUserPurchases(ctx context.Context, userID string) ([]*model.Invoice, error) {
	invoices, err := uc.repo.FindAll(ctx, &userID)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to list purchases")
	}
	return invoices, nil
}

func (uc *invoiceUseCase) CreateInvoice(ctx context.Context, input *dto.CreateInvoiceInput) (*model.Invoice, error) {
	buyer, err := uc.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to load buyer")
	}
	if buyer == nil {
		return nil, httperrors.NewDomain("the user does not exist")
	}

	items, total, err := uc.priceItems(ctx, input.Items, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &model.Invoice{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID: input.UserID,
		Total:  total,
		Status: model.InvoiceStatusPending,
	}
	for i := range items {
		items[i].InvoiceID = inv.ID
	}
	inv.Items = items

	if err := uc.repo.Create(ctx, inv); err != nil {
		if errors.Is(err, checkout.ErrInsufficientStock) {
			return nil, httperrors.NewDomain("insufficient stock for one of the invoice products")
		}
		uc.logger.Error("invoice creation failed", zap.String("invoice_id", inv.ID), zap.Error(err))
		return nil, httperrors.Wrap(err, "failed to create invoice")
	}
	return inv, nil
}

func (uc *invoiceUseCase) UpdateInvoice(ctx context.Context, id string, input *dto.UpdateInvoiceInput) (*model.Invoice, error) {
	inv, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to get invoice")
	}
	if inv == nil {
		return nil, httperrors.NewNotFound("invoice not found")
	}

	oldItems := inv.Items
	replaceItems := len(input.Items) > 0

	if input.Status != nil {
		inv.Status = *input.Status
	}
	if replaceItems {
		// Old lines are credited back inside the update transaction, so on
		// paper their quantities are available again for the new lines.
		credited := make(map[string]int, len(oldItems))
		for _, item := range oldItems {
			credited[item.ProductID] += item.Quantity
		}
		items, total, err := uc.priceItems(ctx, input.Items, credited)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].InvoiceID = inv.ID
		}
		inv.Items = items
		inv.Total = total
	}
	inv.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, inv, oldItems, replaceItems); err != nil {
		if errors.Is(err, checkout.ErrInsufficientStock) {
			return nil, httperrors.NewDomain("insufficient stock for one of the invoice products")
		}
		uc.logger.Error("invoice update failed", zap.String("invoice_id", inv.ID), zap.Error(err))
		return nil, httperrors.Wrap(err, "failed to update invoice")
	}
	return inv, nil
}

func (uc *invoiceUseCase) DownloadInvoice(ctx context.Context, caller *model.User, id string) (string, []byte, error) {
	inv, err := uc.GetInvoice(ctx, caller, id)
	if err != nil {
		return "", nil, err
	}

	data, err := RenderPDF(inv)
	if err != nil {
		uc.logger.Error("invoice pdf rendering failed", zap.String("invoice_id", inv.ID), zap.Error(err))
		return "", nil, httperrors.Wrap(err, "failed to render invoice")
	}
	return fmt.Sprintf("factura-%s.pdf", inv.ID), data, nil
}

// priceItems validates the referenced products and captures their current
// prices, collapsing duplicate lines for the same product. credited holds
// quantities that will be returned to stock before the new lines are
// debited, so they count as available here.
func (uc *invoiceUseCase) priceItems(ctx context.Context, inputs []dto.InvoiceItemInput, credited map[string]int) ([]model.InvoiceItem, float64, error) {
	quantities := make(map[string]int, len(inputs))
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if _, seen := quantities[in.ProductID]; !seen {
			ids = append(ids, in.ProductID)
		}
		quantities[in.ProductID] += in.Quantity
	}

	products, err := uc.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, httperrors.Wrap(err, "failed to load invoice products")
	}
	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]model.InvoiceItem, 0, len(ids))
	var total float64
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, 0, httperrors.NewDomain(fmt.Sprintf("product %s does not exist", id))
		}
		qty := quantities[id]
		if p.Stock+credited[id] < qty {
			return nil, 0, httperrors.NewDomain(fmt.Sprintf("insufficient stock for product %s", p.Name))
		}
		items = append(items, model.InvoiceItem{
			ProductID: id,
			Quantity:  qty,
			Price:     p.Price,
		})
		total += p.Price * float64(qty)
	}
	return items, total, nil
}
