package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendago/ventas-online/internal/category"
	"github.com/tiendago/ventas-online/internal/category/dto"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

type fakeCategoryRepo struct {
	categories map[string]*model.Category
	reassigned [][2]string // [deleted id, default id]
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*model.Category{}}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *model.Category) error {
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	if c, ok := f.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c *model.Category) error {
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) DeleteWithReassign(ctx context.Context, id, defaultID string) error {
	f.reassigned = append(f.reassigned, [2]string{id, defaultID})
	delete(f.categories, id)
	return nil
}

func newCategoryFixture() (*fakeCategoryRepo, category.UseCase) {
	repo := newFakeCategoryRepo()
	repo.categories["default-id"] = &model.Category{
		BaseModel: model.BaseModel{ID: "default-id"},
		Name:      "General",
		Status:    true,
	}
	return repo, NewCategoryUseCase(repo, "General", zap.NewNop())
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	_, uc := newCategoryFixture()

	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "General"})
	assert.True(t, httperrors.IsKind(err, httperrors.KindDomain))
}

func TestCreateCategoryRecordsCreator(t *testing.T) {
	_, uc := newCategoryFixture()

	cat, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
		Name:      "Electrónica",
		CreatedBy: "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, cat.CreatedBy)
	assert.Equal(t, "user-1", *cat.CreatedBy)
	assert.True(t, cat.Status)
}

func TestUpdateCategoryRenameCollision(t *testing.T) {
	_, uc := newCategoryFixture()
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Hogar"})
	require.NoError(t, err)

	taken := "General"
	_, err = uc.UpdateCategory(ctx, cat.ID, &dto.UpdateCategoryInput{Name: &taken})
	assert.True(t, httperrors.IsKind(err, httperrors.KindDomain))
}

func TestDeleteCategoryReassignsToDefault(t *testing.T) {
	repo, uc := newCategoryFixture()
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Hogar"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteCategory(ctx, cat.ID))
	require.Len(t, repo.reassigned, 1)
	assert.Equal(t, [2]string{cat.ID, "default-id"}, repo.reassigned[0])
}

func TestDeleteDefaultCategoryRefused(t *testing.T) {
	repo, uc := newCategoryFixture()

	err := uc.DeleteCategory(context.Background(), "default-id")
	assert.True(t, httperrors.IsKind(err, httperrors.KindDomain))
	assert.Empty(t, repo.reassigned)
	assert.NotNil(t, repo.categories["default-id"])
}

func TestDeleteUnknownCategory(t *testing.T) {
	_, uc := newCategoryFixture()

	err := uc.DeleteCategory(context.Background(), "ghost")
	assert.True(t, httperrors.IsKind(err, httperrors.KindNotFound))
}
