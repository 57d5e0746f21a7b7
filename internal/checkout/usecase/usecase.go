package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tiendago/ventas-online/internal/checkout"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

// CartFinder is the slice of the cart repository the checkout needs.
type CartFinder interface {
	FindByUser(ctx context.Context, userID string) (*model.Cart, error)
}

// ProductBatchFinder is the slice of the product repository the checkout needs.
type ProductBatchFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

type checkoutUseCase struct {
	orders   checkout.Repository
	carts    CartFinder
	products ProductBatchFinder
	logger   *zap.Logger
}

func NewCheckoutUseCase(orders checkout.Repository, carts CartFinder, products ProductBatchFinder, log *zap.Logger) checkout.UseCase {
	return &checkoutUseCase{
		orders:   orders,
		carts:    carts,
		products: products,
		logger:   log,
	}
}

func (uc *checkoutUseCase) Checkout(ctx context.Context, userID string) (*model.Invoice, error) {
	crt, err := uc.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to load cart")
	}
	if crt == nil || len(crt.Items) == 0 {
		return nil, httperrors.NewDomain("the cart is empty")
	}

	ids := make([]string, len(crt.Items))
	for i, item := range crt.Items {
		ids[i] = item.ProductID
	}
	products, err := uc.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to load cart products")
	}
	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// Fail fast on every line before touching anything. The transactional
	// conditional decrement below is still the authority under concurrency.
	for _, item := range crt.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, httperrors.NewDomain("a cart product no longer exists")
		}
		if p.Stock < item.Quantity {
			return nil, httperrors.NewDomain(fmt.Sprintf("insufficient stock for product %s", p.Name))
		}
	}

	now := time.Now()
	inv := &model.Invoice{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID: userID,
		Status: model.InvoiceStatusPending,
	}
	for _, item := range crt.Items {
		p := byID[item.ProductID]
		inv.Items = append(inv.Items, model.InvoiceItem{
			InvoiceID: inv.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     p.Price, // captured at purchase time
		})
		inv.Total += p.Price * float64(item.Quantity)
	}

	if err := uc.orders.CreateOrder(ctx, inv, crt.ID); err != nil {
		if errors.Is(err, checkout.ErrInsufficientStock) {
			return nil, httperrors.NewDomain("insufficient stock for one of the cart products")
		}
		uc.logger.Error("checkout transaction failed",
			zap.String("user_id", userID),
			zap.String("invoice_id", inv.ID),
			zap.Error(err),
		)
		return nil, httperrors.Wrap(err, "checkout failed")
	}

	uc.logger.Info("checkout completed",
		zap.String("user_id", userID),
		zap.String("invoice_id", inv.ID),
		zap.Float64("total", inv.Total),
	)
	return inv, nil
}
