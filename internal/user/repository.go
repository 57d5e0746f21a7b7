package user

import (
	"context"

	"github.com/tiendago/ventas-online/internal/model"
)

type Repository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindActive(ctx context.Context, limit, offset int) ([]model.User, int, error)
	Update(ctx context.Context, u *model.User) error
}
