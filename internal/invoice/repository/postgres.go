package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	checkoutrepo "github.com/tiendago/ventas-online/internal/checkout/repository"
	"github.com/tiendago/ventas-online/internal/model"
)

const selectWithUser = `
    SELECT i.id, i.user_id, i.total, i.status, i.created_at, i.updated_at,
           u.name AS user_name, u.email AS user_email
    FROM invoices i
    LEFT JOIN users u ON u.id = i.user_id
`

const selectItemsWithProduct = `
    SELECT ii.invoice_id, ii.product_id, ii.quantity, ii.price,
           p.name AS product_name
    FROM invoice_items ii
    LEFT JOIN products p ON p.id = ii.product_id
`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindAll(ctx context.Context, userID *string) ([]*model.Invoice, error) {
	query := selectWithUser
	args := []interface{}{}
	if userID != nil {
		query += ` WHERE i.user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY i.created_at DESC`

	var invoices []*model.Invoice
	if err := r.DB.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if err := r.attachItems(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Invoice, error) {
	var invoices []*model.Invoice
	err := r.DB.SelectContext(ctx, &invoices, selectWithUser+` WHERE i.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if len(invoices) == 0 {
		return nil, nil
	}
	if err := r.attachItems(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices[0], nil
}

func (r *PGRepository) Create(ctx context.Context, inv *model.Invoice) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range inv.Items {
		if err := checkoutrepo.DebitStock(ctx, tx, item.ProductID, item.Quantity, inv.ID, inv.UserID); err != nil {
			return err
		}
	}
	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO invoices (id, user_id, total, status, created_at, updated_at)
        VALUES (:id, :user_id, :total, :status, :created_at, :updated_at)
    `, inv)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	if err := insertItems(ctx, tx, inv.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) Update(ctx context.Context, inv *model.Invoice, oldItems []model.InvoiceItem, replaceItems bool) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if replaceItems {
		// Credit before debit so an edit that keeps a product can reuse its
		// own previously sold quantity.
		for _, item := range oldItems {
			if err := checkoutrepo.CreditStock(ctx, tx, item.ProductID, item.Quantity, inv.ID, inv.UserID); err != nil {
				return err
			}
		}
		for _, item := range inv.Items {
			if err := checkoutrepo.DebitStock(ctx, tx, item.ProductID, item.Quantity, inv.ID, inv.UserID); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
			return fmt.Errorf("failed to delete invoice items: %w", err)
		}
		if err := insertItems(ctx, tx, inv.Items); err != nil {
			return err
		}
	}

	_, err = tx.NamedExecContext(ctx, `
        UPDATE invoices
        SET total = :total, status = :status, updated_at = :updated_at
        WHERE id = :id
    `, inv)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return tx.Commit()
}

func insertItems(ctx context.Context, tx *sqlx.Tx, items []model.InvoiceItem) error {
	for _, item := range items {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO invoice_items (invoice_id, product_id, quantity, price)
            VALUES ($1, $2, $3, $4)
        `, item.InvoiceID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}
	return nil
}

func (r *PGRepository) attachItems(ctx context.Context, invoices []*model.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]string, len(invoices))
	byID := make(map[string]*model.Invoice, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.ID
		byID[inv.ID] = inv
	}

	query, args, err := sqlx.In(selectItemsWithProduct+` WHERE ii.invoice_id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("failed to build invoice items query: %w", err)
	}
	query = r.DB.Rebind(query)

	var items []model.InvoiceItem
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		return fmt.Errorf("failed to load invoice items: %w", err)
	}
	for _, item := range items {
		inv := byID[item.InvoiceID]
		inv.Items = append(inv.Items, item)
	}
	return nil
}
