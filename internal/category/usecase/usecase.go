package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tiendago/ventas-online/internal/category"
	"github.com/tiendago/ventas-online/internal/category/dto"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo        category.Repository
	defaultName string
	logger      *zap.Logger
}

// NewCategoryUseCase builds the catalog category use case. defaultName is the
// category orphaned products are reassigned to when their category is deleted.
func NewCategoryUseCase(repo category.Repository, defaultName string, log *zap.Logger) category.UseCase {
	return &categoryUseCase{
		repo:        repo,
		defaultName: defaultName,
		logger:      log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	existing, err := uc.repo.FindByName(ctx, input.Name)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to check category name")
	}
	if existing != nil {
		return nil, httperrors.NewDomain(fmt.Sprintf("the category %s already exists", input.Name))
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        input.Name,
		Description: &input.Description,
		Status:      true,
	}
	if input.CreatedBy != "" {
		createdBy := input.CreatedBy
		cat.CreatedBy = &createdBy
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, httperrors.Wrap(err, "failed to create category")
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to get category")
	}
	if cat == nil {
		return nil, httperrors.NewNotFound("category not found")
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to list categories")
	}
	return cats, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, id string, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != cat.Name {
		existing, err := uc.repo.FindByName(ctx, *input.Name)
		if err != nil {
			return nil, httperrors.Wrap(err, "failed to check category name")
		}
		if existing != nil {
			return nil, httperrors.NewDomain(fmt.Sprintf("the category %s already exists", *input.Name))
		}
		cat.Name = *input.Name
	}
	if input.Description != nil {
		cat.Description = input.Description
	}
	if input.Status != nil {
		cat.Status = *input.Status
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, httperrors.Wrap(err, "failed to update category")
	}
	return cat, nil
}

// DeleteCategory reassigns every product in the category to the default
// category before removing it, so no product is left dangling.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	cat, err := uc.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if cat.Name == uc.defaultName {
		return httperrors.NewDomain("the default category cannot be deleted")
	}

	defaultCat, err := uc.repo.FindByName(ctx, uc.defaultName)
	if err != nil {
		return httperrors.Wrap(err, "failed to resolve default category")
	}
	if defaultCat == nil {
		return httperrors.Wrap(nil, "default category is missing, run seeding")
	}

	if err := uc.repo.DeleteWithReassign(ctx, cat.ID, defaultCat.ID); err != nil {
		return httperrors.Wrap(err, "failed to delete category")
	}

	uc.logger.Info("category deleted, products reassigned",
		zap.String("category_id", cat.ID),
		zap.String("default_category_id", defaultCat.ID),
	)
	return nil
}
