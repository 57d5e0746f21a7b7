package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendago/ventas-online/internal/checkout"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

type fakeCartFinder struct {
	carts map[string]*model.Cart
}

func (f *fakeCartFinder) FindByUser(ctx context.Context, userID string) (*model.Cart, error) {
	return f.carts[userID], nil
}

type fakeProductFinder struct {
	products map[string]model.Product
}

func (f *fakeProductFinder) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	created  *model.Invoice
	cartID   string
	calls    int
	failWith error
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, inv *model.Invoice, cartID string) error {
	f.calls++
	if f.failWith != nil {
		return f.failWith
	}
	f.created = inv
	f.cartID = cartID
	return nil
}

func newCheckoutFixture() (*fakeCartFinder, *fakeProductFinder, *fakeOrderRepo, checkout.UseCase) {
	carts := &fakeCartFinder{carts: map[string]*model.Cart{}}
	products := &fakeProductFinder{products: map[string]model.Product{}}
	orders := &fakeOrderRepo{}
	uc := NewCheckoutUseCase(orders, carts, products, zap.NewNop())
	return carts, products, orders, uc
}

func TestCheckoutEmptyCart(t *testing.T) {
	carts, _, orders, uc := newCheckoutFixture()

	// No cart at all.
	_, err := uc.Checkout(context.Background(), "user-1")
	assert.True(t, httperrors.IsKind(err, httperrors.KindDomain))

	// A cart with zero items behaves the same.
	carts.carts["user-1"] = &model.Cart{
		BaseModel: model.BaseModel{ID: "cart-1"},
		UserID:    "user-1",
	}
	_, err = uc.Checkout(context.Background(), "user-1")
	assert.True(t, httperrors.IsKind(err, httperrors.KindDomain))

	assert.Zero(t, orders.calls, "nothing may be mutated for an empty cart")
}

func TestCheckoutComputesTotalFromCapturedPrices(t *testing.T) {
	carts, products, orders, uc := newCheckoutFixture()
	products.products["p1"] = model.Product{
		BaseModel: model.BaseModel{ID: "p1"}, Name: "teclado", Price: 20, Stock: 10,
	}
	products.products["p2"] = model.Product{
		BaseModel: model.BaseModel{ID: "p2"}, Name: "mouse", Price: 30, Stock: 1,
	}
	carts.carts["user-1"] = &model.Cart{
		BaseModel: model.BaseModel{ID: "cart-1"},
		UserID:    "user-1",
		Items: []model.CartItem{
			{CartID: "cart-1", ProductID: "p1", Quantity: 2},
			{CartID: "cart-1", ProductID: "p2", Quantity: 1},
		},
	}

	inv, err := uc.Checkout(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 70.0, inv.Total)
	assert.Equal(t, model.InvoiceStatusPending, inv.Status)
	assert.Equal(t, "user-1", inv.UserID)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, 20.0, inv.Items[0].Price)
	assert.Equal(t, 2, inv.Items[0].Quantity)
	assert.Equal(t, inv.ID, inv.Items[0].InvoiceID)

	assert.Equal(t, 1, orders.calls)
	assert.Equal(t, "cart-1", orders.cartID)
	assert.Same(t, inv, orders.created)
}

func TestCheckoutInsufficientStockFailsBeforeMutation(t *testing.T) {
	carts, products, orders, uc := newCheckoutFixture()
	products.products["p1"] = model.Product{
		BaseModel: model.BaseModel{ID: "p1"}, Name: "monitor", Price: 100, Stock: 1,
	}
	carts.carts["user-1"] = &model.Cart{
		BaseModel: model.BaseModel{ID: "cart-1"},
		UserID:    "user-1",
		Items:     []model.CartItem{{CartID: "cart-1", ProductID: "p1", Quantity: 2}},
	}

	_, err := uc.Checkout(context.Background(), "user-1")
	assert.True(t, httperrors.IsKind(err, httperrors.KindDomain))
	assert.Zero(t, orders.calls)
}

func TestCheckoutZeroStockProduct(t *testing.T) {
	carts, products, orders, uc := newCheckoutFixture()
	products.products["p1"] = model.Product{
		BaseModel: model.BaseModel{ID: "p1"}, Name: "agotado", Price: 15, Stock: 0,
	}
	carts.carts["user-1"] = &model.Cart{
		BaseModel: model.BaseModel{ID: "cart-1"},
		UserID:    "user-1",
		Items:     []model.CartItem{{CartID: "cart-1", ProductID: "p1", Quantity: 1}},
	}

	_, err := uc.Checkout(context.Background(), "user-1")
	assert.True(t, httperrors.IsKind(err, httperrors.KindDomain))
	assert.Zero(t, orders.calls)
}

func TestCheckoutVanishedProduct(t *testing.T) {
	carts, _, orders, uc := newCheckoutFixture()
	carts.carts["user-1"] = &model.Cart{
		BaseModel: model.BaseModel{ID: "cart-1"},
		UserID:    "user-1",
		Items:     []model.CartItem{{CartID: "cart-1", ProductID: "ghost", Quantity: 1}},
	}

	_, err := uc.Checkout(context.Background(), "user-1")
	assert.True(t, httperrors.IsKind(err, httperrors.KindDomain))
	assert.Zero(t, orders.calls)
}

func TestCheckoutConcurrentStockLoss(t *testing.T) {
	// The fail-fast validation passed, but the transaction lost the race for
	// the last unit. The caller still gets a domain error, not a 500.
	carts, products, orders, uc := newCheckoutFixture()
	orders.failWith = checkout.ErrInsufficientStock
	products.products["p1"] = model.Product{
		BaseModel: model.BaseModel{ID: "p1"}, Name: "ultimo", Price: 10, Stock: 1,
	}
	carts.carts["user-1"] = &model.Cart{
		BaseModel: model.BaseModel{ID: "cart-1"},
		UserID:    "user-1",
		Items:     []model.CartItem{{CartID: "cart-1", ProductID: "p1", Quantity: 1}},
	}

	_, err := uc.Checkout(context.Background(), "user-1")
	assert.True(t, httperrors.IsKind(err, httperrors.KindDomain))
	assert.Equal(t, 1, orders.calls)
}
