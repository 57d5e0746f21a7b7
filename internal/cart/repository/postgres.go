package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/tiendago/ventas-online/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByUser(ctx context.Context, userID string) (*model.Cart, error) {
	var c model.Cart
	err := r.DB.GetContext(ctx, &c, `SELECT * FROM carts WHERE user_id = $1 LIMIT 1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.findItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

func (r *PGRepository) findItems(ctx context.Context, cartID string) ([]model.CartItem, error) {
	var items []model.CartItem
	query := `
        SELECT ci.*, p.name AS product_name, p.price AS unit_price
        FROM cart_items ci
        LEFT JOIN products p ON p.id = ci.product_id
        WHERE ci.cart_id = $1
        ORDER BY p.name ASC
    `
	err := r.DB.SelectContext(ctx, &items, query, cartID)
	return items, err
}

func (r *PGRepository) Create(ctx context.Context, c *model.Cart) error {
	query := `
        INSERT INTO carts (id, user_id, created_at, updated_at)
        VALUES (:id, :user_id, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) AddItem(ctx context.Context, cartID, productID string, qty int) error {
	query := `
        INSERT INTO cart_items (cart_id, product_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (cart_id, product_id)
        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
    `
	_, err := r.DB.ExecContext(ctx, query, cartID, productID, qty)
	return err
}

func (r *PGRepository) SetItemQuantity(ctx context.Context, cartID, productID string, qty int) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND product_id = $3`,
		qty, cartID, productID,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) RemoveItem(ctx context.Context, cartID, productID string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID,
	)
	return err
}

func (r *PGRepository) ClearItems(ctx context.Context, cartID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
