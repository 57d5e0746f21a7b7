package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/internal/product"
	"github.com/tiendago/ventas-online/internal/product/dto"
	"github.com/tiendago/ventas-online/pkg/cache"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

const (
	bestSellingLimit = 5
	listCacheTTL     = 5 * time.Minute
)

// CategoryFinder is the slice of the category repository needed to validate
// product-category references.
type CategoryFinder interface {
	FindByID(ctx context.Context, id string) (*model.Category, error)
}

type productUseCase struct {
	repo       product.Repository
	categories CategoryFinder
	cache      *cache.RedisClient
	logger     *zap.Logger
}

func NewProductUseCase(repo product.Repository, categories CategoryFinder, cache *cache.RedisClient, log *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:       repo,
		categories: categories,
		cache:      cache,
		logger:     log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := uc.checkName(ctx, input.Name, ""); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &model.Product{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        input.Name,
		Description: &input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		Status:      true,
		Images:      []string{},
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, httperrors.Wrap(err, "failed to create product")
	}

	go uc.invalidateListCache(context.Background())
	return p, nil
}

func (uc *productUseCase) checkName(ctx context.Context, name, excludeID string) error {
	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return httperrors.Wrap(err, "failed to check product name")
	}
	if existing != nil && existing.ID != excludeID {
		return httperrors.NewDomain(fmt.Sprintf("the product %s already exists", name))
	}
	return nil
}

func (uc *productUseCase) checkCategory(ctx context.Context, id string) error {
	cat, err := uc.categories.FindByID(ctx, id)
	if err != nil {
		return httperrors.Wrap(err, "failed to check category")
	}
	if cat == nil {
		return httperrors.NewDomain("the referenced category does not exist")
	}
	return nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to get product")
	}
	if p == nil {
		return nil, httperrors.NewNotFound("product not found")
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	cacheKey := uc.listCacheKey(filters)
	if products, ok := uc.cachedList(ctx, cacheKey); ok {
		return products, nil
	}

	products, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to list products")
	}

	uc.storeList(ctx, cacheKey, products)
	return products, nil
}

func (uc *productUseCase) ListOutOfStock(ctx context.Context) ([]model.Product, error) {
	products, err := uc.repo.FindOutOfStock(ctx)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to list out-of-stock products")
	}
	return products, nil
}

func (uc *productUseCase) ListBestSelling(ctx context.Context) ([]model.Product, error) {
	cacheKey := "products:best-selling"
	if products, ok := uc.cachedList(ctx, cacheKey); ok {
		return products, nil
	}

	products, err := uc.repo.FindBestSelling(ctx, bestSellingLimit)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to list best-selling products")
	}

	uc.storeList(ctx, cacheKey, products)
	return products, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != p.Name {
		if err := uc.checkName(ctx, *input.Name, p.ID); err != nil {
			return nil, err
		}
		p.Name = *input.Name
	}
	if input.CategoryID != nil && *input.CategoryID != p.CategoryID {
		if err := uc.checkCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = *input.CategoryID
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, httperrors.Wrap(err, "failed to update product")
	}

	go uc.invalidateListCache(context.Background())
	return p, nil
}

// DeleteProduct is a hard delete. Invoices that already reference the product
// keep their line items, read-side joins just come back empty for the name.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, p.ID); err != nil {
		return httperrors.Wrap(err, "failed to delete product")
	}

	go uc.invalidateListCache(context.Background())
	return nil
}

// AddImage prepends the stored file path so the image list stays
// most-recent-first.
func (uc *productUseCase) AddImage(ctx context.Context, id, imagePath string) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Images = append([]string{imagePath}, p.Images...)
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, httperrors.Wrap(err, "failed to update product image")
	}
	return p, nil
}

func (uc *productUseCase) listCacheKey(filters *dto.ProductFilters) string {
	data, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data))
}

func (uc *productUseCase) cachedList(ctx context.Context, key string) ([]model.Product, bool) {
	if uc.cache == nil || key == "" {
		return nil, false
	}
	data, ok := uc.cache.GetBytes(ctx, key)
	if !ok {
		return nil, false
	}
	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (uc *productUseCase) storeList(ctx context.Context, key string, products []model.Product) {
	if uc.cache == nil || key == "" {
		return
	}
	if data, err := json.Marshal(products); err == nil {
		uc.cache.SetBytes(ctx, key, data, listCacheTTL)
	}
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	uc.cache.DelPattern(ctx, "products:*")
}
