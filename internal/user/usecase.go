package user

import (
	"context"

	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/internal/user/dto"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error)
	Login(ctx context.Context, input *dto.LoginInput) (*model.User, string, error)
	CreateUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]model.User, int, error)
	UpdateSelf(ctx context.Context, caller *model.User, input *dto.UpdateUserInput) (*model.User, error)
	UpdateByID(ctx context.Context, caller *model.User, id string, input *dto.UpdateUserInput) (*model.User, error)
	DeleteSelf(ctx context.Context, caller *model.User) (*model.User, error)
	DeleteByID(ctx context.Context, caller *model.User, id string) (*model.User, error)
}
