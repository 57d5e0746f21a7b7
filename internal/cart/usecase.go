package cart

import (
	"context"

	"github.com/tiendago/ventas-online/internal/cart/dto"
	"github.com/tiendago/ventas-online/internal/model"
)

type UseCase interface {
	GetCart(ctx context.Context, userID string) (*model.Cart, error)
	AddItem(ctx context.Context, userID string, input *dto.CartItemInput) (*model.Cart, error)
	EditItem(ctx context.Context, userID string, input *dto.CartItemInput) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*model.Cart, error)
	ClearCart(ctx context.Context, userID string) (*model.Cart, error)
}
