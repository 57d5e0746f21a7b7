package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendago/ventas-online/config"
	"github.com/tiendago/ventas-online/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users   map[string]*model.User
	creates int
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	f.creates++
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindActive(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *model.User) error {
	f.users[u.ID] = u
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*model.Category
	creates    int
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *model.Category) error {
	f.creates++
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c *model.Category) error {
	return nil
}

func (f *fakeCategoryRepo) DeleteWithReassign(ctx context.Context, id, defaultID string) error {
	return nil
}

func seedConfig() config.SeedConfig {
	return config.SeedConfig{
		AdminName:     "Administrador",
		AdminUsername: "admin",
		AdminEmail:    "admin@ventas.local",
		AdminPassword: "Admin123!",
		CategoryName:  "General",
	}
}

func TestEnsureDefaultsCreatesAdminAndCategory(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*model.User{}}
	categories := &fakeCategoryRepo{categories: map[string]*model.Category{}}
	s := NewSeeder(users, categories, seedConfig(), zap.NewNop())

	require.NoError(t, s.EnsureDefaults(context.Background()))

	admin, err := users.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.True(t, admin.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("Admin123!")))

	cat, err := categories.FindByName(context.Background(), "General")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.True(t, cat.Status)
}

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*model.User{}}
	categories := &fakeCategoryRepo{categories: map[string]*model.Category{}}
	s := NewSeeder(users, categories, seedConfig(), zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.EnsureDefaults(ctx))
	require.NoError(t, s.EnsureDefaults(ctx))
	require.NoError(t, s.EnsureDefaults(ctx))

	assert.Equal(t, 1, users.creates)
	assert.Equal(t, 1, categories.creates)
}
