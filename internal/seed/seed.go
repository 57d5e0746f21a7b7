package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tiendago/ventas-online/config"
	"github.com/tiendago/ventas-online/internal/category"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/internal/user"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Seeder creates the records the application cannot run without: the initial
// ADMIN account and the fallback category that orphaned products get
// reassigned to. EnsureDefaults is idempotent and runs before serving.
type Seeder struct {
	users      user.Repository
	categories category.Repository
	cfg        config.SeedConfig
	logger     *zap.Logger
}

func NewSeeder(users user.Repository, categories category.Repository, cfg config.SeedConfig, log *zap.Logger) *Seeder {
	return &Seeder{
		users:      users,
		categories: categories,
		cfg:        cfg,
		logger:     log,
	}
}

func (s *Seeder) EnsureDefaults(ctx context.Context) error {
	if err := s.ensureAdmin(ctx); err != nil {
		return err
	}
	return s.ensureDefaultCategory(ctx)
}

func (s *Seeder) ensureAdmin(ctx context.Context) error {
	existing, err := s.users.FindByUsername(ctx, s.cfg.AdminUsername)
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now()
	admin := &model.User{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     s.cfg.AdminName,
		Username: s.cfg.AdminUsername,
		Email:    s.cfg.AdminEmail,
		Password: string(hash),
		Role:     model.RoleAdmin,
		Status:   true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	s.logger.Info("seeded default admin user", zap.String("username", admin.Username))
	return nil
}

func (s *Seeder) ensureDefaultCategory(ctx context.Context) error {
	existing, err := s.categories.FindByName(ctx, s.cfg.CategoryName)
	if err != nil {
		return fmt.Errorf("failed to look up default category: %w", err)
	}
	if existing != nil {
		return nil
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:   s.cfg.CategoryName,
		Status: true,
	}
	if err := s.categories.Create(ctx, cat); err != nil {
		return fmt.Errorf("failed to create default category: %w", err)
	}
	s.logger.Info("seeded default category", zap.String("name", cat.Name))
	return nil
}
