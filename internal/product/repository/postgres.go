package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const selectWithCategory = `
    SELECT p.*, c.name AS category_name
    FROM products p
    LEFT JOIN categories c ON c.id = p.category_id
`

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (id, name, description, price, stock, sold, category_id, status, images, created_at, updated_at)
        VALUES (:id, :name, :description, :price, :stock, :sold, :category_id, :status, :images, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, selectWithCategory+` WHERE p.id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var products []model.Product
	err = r.DB.SelectContext(ctx, &products, query, args...)
	return products, err
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE name = $1 LIMIT 1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	conditions := []string{}
	args := []interface{}{}

	if f != nil && f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		conditions = append(conditions, "p.name ILIKE $1")
	}
	if f != nil && f.CategoryID != "" {
		args = append(args, f.CategoryID)
		if len(args) == 1 {
			conditions = append(conditions, "p.category_id = $1")
		} else {
			conditions = append(conditions, "p.category_id = $2")
		}
	}

	query := selectWithCategory
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	var products []model.Product
	err := r.DB.SelectContext(ctx, &products, query, args...)
	return products, err
}

func (r *PGRepository) FindOutOfStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.DB.SelectContext(ctx, &products, selectWithCategory+` WHERE p.stock = 0 ORDER BY p.name ASC`)
	return products, err
}

func (r *PGRepository) FindBestSelling(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.DB.SelectContext(ctx, &products, selectWithCategory+` ORDER BY p.sold DESC LIMIT $1`, limit)
	return products, err
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            description = :description,
            price = :price,
            stock = :stock,
            sold = :sold,
            category_id = :category_id,
            status = :status,
            images = :images,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}
