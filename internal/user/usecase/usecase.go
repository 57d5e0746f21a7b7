package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tiendago/ventas-online/internal/auth"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/internal/user"
	"github.com/tiendago/ventas-online/internal/user/dto"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type userUseCase struct {
	repo   user.Repository
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewUserUseCase(repo user.Repository, tokens *auth.TokenManager, log *zap.Logger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		tokens: tokens,
		logger: log,
	}
}

func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error) {
	// Public registration always produces a CLIENT account.
	return uc.create(ctx, &dto.CreateUserInput{
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Phone:    input.Phone,
		Role:     model.RoleClient,
	})
}

func (uc *userUseCase) CreateUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error) {
	if input.Role == "" {
		input.Role = model.RoleClient
	}
	return uc.create(ctx, input)
}

func (uc *userUseCase) create(ctx context.Context, input *dto.CreateUserInput) (*model.User, error) {
	if err := uc.checkUnique(ctx, input.Username, input.Email, ""); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now()
	u := &model.User{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
		Phone:    input.Phone,
		Role:     input.Role,
		Status:   true,
	}

	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, httperrors.Wrap(err, "failed to create user")
	}
	return u, nil
}

func (uc *userUseCase) checkUnique(ctx context.Context, username, email, excludeID string) error {
	if username != "" {
		existing, err := uc.repo.FindByUsername(ctx, username)
		if err != nil {
			return httperrors.Wrap(err, "failed to check username")
		}
		if existing != nil && existing.ID != excludeID {
			return httperrors.NewDomain(fmt.Sprintf("the username %s is already registered", username))
		}
	}
	if email != "" {
		existing, err := uc.repo.FindByEmail(ctx, email)
		if err != nil {
			return httperrors.Wrap(err, "failed to check email")
		}
		if existing != nil && existing.ID != excludeID {
			return httperrors.NewDomain(fmt.Sprintf("the email %s is already registered", email))
		}
	}
	return nil
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*model.User, string, error) {
	if input.Email == "" && input.Username == "" {
		return nil, "", httperrors.NewValidation("email or username is required")
	}

	var (
		u   *model.User
		err error
	)
	if input.Email != "" {
		u, err = uc.repo.FindByEmail(ctx, input.Email)
	} else {
		u, err = uc.repo.FindByUsername(ctx, input.Username)
	}
	if err != nil {
		return nil, "", httperrors.Wrap(err, "failed to look up user")
	}
	if u == nil || !u.Status {
		return nil, "", httperrors.NewAuth("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.Password)); err != nil {
		return nil, "", httperrors.NewAuth("invalid credentials")
	}

	token, err := uc.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, "", httperrors.Wrap(err, "failed to sign token")
	}

	return u, token, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, httperrors.Wrap(err, "failed to get user")
	}
	if u == nil {
		return nil, httperrors.NewNotFound("user not found")
	}
	return u, nil
}

func (uc *userUseCase) ListUsers(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	if limit <= 0 {
		limit = 5
	}
	users, total, err := uc.repo.FindActive(ctx, limit, offset)
	if err != nil {
		return nil, 0, httperrors.Wrap(err, "failed to list users")
	}
	return users, total, nil
}

func (uc *userUseCase) UpdateSelf(ctx context.Context, caller *model.User, input *dto.UpdateUserInput) (*model.User, error) {
	if input.Role != nil && !caller.IsAdmin() {
		return nil, httperrors.NewForbidden("only an ADMIN can change roles")
	}
	return uc.applyUpdate(ctx, caller, input)
}

func (uc *userUseCase) UpdateByID(ctx context.Context, caller *model.User, id string, input *dto.UpdateUserInput) (*model.User, error) {
	target, err := uc.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(auth.ActionUserEdit, caller, target); err != nil {
		return nil, err
	}
	return uc.applyUpdate(ctx, target, input)
}

func (uc *userUseCase) applyUpdate(ctx context.Context, target *model.User, input *dto.UpdateUserInput) (*model.User, error) {
	username, email := "", ""
	if input.Username != nil && *input.Username != target.Username {
		username = *input.Username
	}
	if input.Email != nil && *input.Email != target.Email {
		email = *input.Email
	}
	if err := uc.checkUnique(ctx, username, email, target.ID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		target.Name = *input.Name
	}
	if input.Username != nil {
		target.Username = *input.Username
	}
	if input.Email != nil {
		target.Email = *input.Email
	}
	if input.Phone != nil {
		target.Phone = *input.Phone
	}
	if input.Role != nil {
		target.Role = *input.Role
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, httperrors.Wrap(err, "failed to hash password")
		}
		target.Password = string(hashed)
	}
	target.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, target); err != nil {
		return nil, httperrors.Wrap(err, "failed to update user")
	}
	return target, nil
}

func (uc *userUseCase) DeleteSelf(ctx context.Context, caller *model.User) (*model.User, error) {
	return uc.softDelete(ctx, caller)
}

func (uc *userUseCase) DeleteByID(ctx context.Context, caller *model.User, id string) (*model.User, error) {
	target, err := uc.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(auth.ActionUserDelete, caller, target); err != nil {
		return nil, err
	}
	return uc.softDelete(ctx, target)
}

// softDelete never removes the row, it only flips the status flag.
func (uc *userUseCase) softDelete(ctx context.Context, target *model.User) (*model.User, error) {
	target.Status = false
	target.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, target); err != nil {
		return nil, httperrors.Wrap(err, "failed to delete user")
	}
	uc.logger.Info("user soft-deleted", zap.String("user_id", target.ID))
	return target, nil
}
