package category

import (
	"context"

	"github.com/tiendago/ventas-online/internal/model"
)

type Repository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	// DeleteWithReassign moves every product referencing id to defaultID and
	// removes the category, all inside one transaction.
	DeleteWithReassign(ctx context.Context, id, defaultID string) error
}
