package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendago/ventas-online/internal/cart/dto"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

type fakeCartRepo struct {
	carts map[string]*model.Cart // keyed by user id
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*model.Cart{}}
}

func (f *fakeCartRepo) FindByUser(ctx context.Context, userID string) (*model.Cart, error) {
	return f.carts[userID], nil
}

func (f *fakeCartRepo) Create(ctx context.Context, c *model.Cart) error {
	f.carts[c.UserID] = c
	return nil
}

func (f *fakeCartRepo) byID(cartID string) *model.Cart {
	for _, c := range f.carts {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func (f *fakeCartRepo) AddItem(ctx context.Context, cartID, productID string, qty int) error {
	c := f.byID(cartID)
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += qty
			return nil
		}
	}
	c.Items = append(c.Items, model.CartItem{CartID: cartID, ProductID: productID, Quantity: qty})
	return nil
}

func (f *fakeCartRepo) SetItemQuantity(ctx context.Context, cartID, productID string, qty int) (bool, error) {
	c := f.byID(cartID)
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = qty
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCartRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	c := f.byID(cartID)
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCartRepo) ClearItems(ctx context.Context, cartID string) error {
	f.byID(cartID).Items = nil
	return nil
}

type fakeProductFinder struct {
	products map[string]*model.Product
}

func (f *fakeProductFinder) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return f.products[id], nil
}

func newCartFixture() (*fakeCartRepo, *fakeProductFinder, *cartUseCase) {
	repo := newFakeCartRepo()
	products := &fakeProductFinder{products: map[string]*model.Product{
		"p1": {BaseModel: model.BaseModel{ID: "p1"}, Name: "teclado", Price: 20, Stock: 10},
	}}
	uc := NewCartUseCase(repo, products, zap.NewNop()).(*cartUseCase)
	return repo, products, uc
}

func TestAddItemLazilyCreatesCart(t *testing.T) {
	repo, _, uc := newCartFixture()

	c, err := uc.AddItem(context.Background(), "user-1", &dto.CartItemInput{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.NotNil(t, repo.carts["user-1"])
}

func TestAddItemSumsQuantities(t *testing.T) {
	_, _, uc := newCartFixture()
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "user-1", &dto.CartItemInput{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	c, err := uc.AddItem(ctx, "user-1", &dto.CartItemInput{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	_, _, uc := newCartFixture()

	_, err := uc.AddItem(context.Background(), "user-1", &dto.CartItemInput{ProductID: "ghost", Quantity: 1})
	assert.True(t, httperrors.IsKind(err, httperrors.KindNotFound))
}

func TestEditItemReplacesQuantity(t *testing.T) {
	_, _, uc := newCartFixture()
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "user-1", &dto.CartItemInput{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	c, err := uc.EditItem(ctx, "user-1", &dto.CartItemInput{ProductID: "p1", Quantity: 7})
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 7, c.Items[0].Quantity)
}

func TestEditItemMissingLine(t *testing.T) {
	_, _, uc := newCartFixture()
	ctx := context.Background()

	// No cart yet.
	_, err := uc.EditItem(ctx, "user-1", &dto.CartItemInput{ProductID: "p1", Quantity: 1})
	assert.True(t, httperrors.IsKind(err, httperrors.KindNotFound))

	// Cart exists but the line does not.
	_, err = uc.AddItem(ctx, "user-1", &dto.CartItemInput{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	_, err = uc.EditItem(ctx, "user-1", &dto.CartItemInput{ProductID: "other", Quantity: 1})
	assert.True(t, httperrors.IsKind(err, httperrors.KindNotFound))
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	_, _, uc := newCartFixture()
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "user-1", &dto.CartItemInput{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	c, err := uc.RemoveItem(ctx, "user-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	// Removing again is still a success.
	_, err = uc.RemoveItem(ctx, "user-1", "p1")
	assert.NoError(t, err)
}

func TestClearCart(t *testing.T) {
	_, _, uc := newCartFixture()
	ctx := context.Background()

	// Clearing a cart that never existed is a 404.
	_, err := uc.ClearCart(ctx, "user-1")
	assert.True(t, httperrors.IsKind(err, httperrors.KindNotFound))

	_, err = uc.AddItem(ctx, "user-1", &dto.CartItemInput{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	c, err := uc.ClearCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}
