package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tiendago/ventas-online/internal/cart"
	"github.com/tiendago/ventas-online/internal/cart/dto"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

// ProductFinder is the slice of the product repository needed to validate
// line-item references.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

type cartUseCase struct {
	repo     cart.Repository
	products ProductFinder
	logger   *zap.Logger
}

func NewCartUseCase(repo cart.Repository, products ProductFinder, log *zap.Logger) cart.UseCase {
	return &cartUseCase{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

func (uc *cartUseCase) GetCart(ctx context.Context, userID string) (*model.Cart, error) {
	c, err := uc.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to get cart")
	}
	if c == nil {
		return nil, httperrors.NewNotFound("cart not found")
	}
	return c, nil
}

// AddItem lazily creates the cart and sums quantities when the product is
// already a line item.
func (uc *cartUseCase) AddItem(ctx context.Context, userID string, input *dto.CartItemInput) (*model.Cart, error) {
	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to check product")
	}
	if p == nil {
		return nil, httperrors.NewNotFound("product not found")
	}

	c, err := uc.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to get cart")
	}
	if c == nil {
		now := time.Now()
		c = &model.Cart{
			BaseModel: model.BaseModel{
				ID:        uuid.New().String(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID: userID,
		}
		if err := uc.repo.Create(ctx, c); err != nil {
			return nil, httperrors.Wrap(err, "failed to create cart")
		}
	}

	if err := uc.repo.AddItem(ctx, c.ID, input.ProductID, input.Quantity); err != nil {
		return nil, httperrors.Wrap(err, "failed to add cart item")
	}

	return uc.GetCart(ctx, userID)
}

// EditItem replaces the quantity of an existing line. Both the cart and the
// line must already exist.
func (uc *cartUseCase) EditItem(ctx context.Context, userID string, input *dto.CartItemInput) (*model.Cart, error) {
	c, err := uc.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.SetItemQuantity(ctx, c.ID, input.ProductID, input.Quantity)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to edit cart item")
	}
	if !updated {
		return nil, httperrors.NewNotFound("the product is not in the cart")
	}

	return uc.GetCart(ctx, userID)
}

// RemoveItem filters the line out. Removing an absent line is not an error.
func (uc *cartUseCase) RemoveItem(ctx context.Context, userID, productID string) (*model.Cart, error) {
	c, err := uc.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.RemoveItem(ctx, c.ID, productID); err != nil {
		return nil, httperrors.Wrap(err, "failed to remove cart item")
	}

	return uc.GetCart(ctx, userID)
}

func (uc *cartUseCase) ClearCart(ctx context.Context, userID string) (*model.Cart, error) {
	c, err := uc.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.ClearItems(ctx, c.ID); err != nil {
		return nil, httperrors.Wrap(err, "failed to clear cart")
	}

	c.Items = nil
	return c, nil
}
