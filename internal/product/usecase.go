package product

import (
	"context"

	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	ListOutOfStock(ctx context.Context) ([]model.Product, error)
	ListBestSelling(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AddImage(ctx context.Context, id, imagePath string) (*model.Product, error)
}
