package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
)

type ProductFilter struct {
	Category *string
	IsActive *bool
}

func (r *Repository) GetAllProducts(filter ProductFilter) ([]*domain.Product, error) {
	query := `
		SELECT id, name, description, category, base_price, image_url, is_active, created_at, version
		FROM products WHERE 1 = 1
	`
	args := []any{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	}

	query += " ORDER BY id"

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p := &domain.Product{}
		dst := []any{&p.ID, &p.Name, &p.Description, &p.Category, &p.BasePrice, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *Repository) GetProductByID(id int64) (*domain.Product, error) {
	query := `
		SELECT name, description, category, base_price, image_url, is_active, created_at, version
		FROM products WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	p := &domain.Product{
		ID: id,
	}

	dst := []any{&p.Name, &p.Description, &p.Category, &p.BasePrice, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repository) CreateProduct(p *domain.Product) error {
	query := `
		INSERT INTO products (name, description, category, base_price, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{p.Name, p.Description, p.Category, p.BasePrice, p.ImageURL, p.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateProduct(p *domain.Product) error {
	query := `
		UPDATE products
		SET
			name = $1,
			description = $2,
			category = $3,
			base_price = $4,
			image_url = $5,
			is_active = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{p.Name, p.Description, p.Category, p.BasePrice, p.ImageURL, p.IsActive, p.ID, p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.Version); err != nil {
		return err
	}

	return nil
}

// DeleteProduct 同样会级联清理该产品的时段关联行。
func (r *Repository) DeleteProduct(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_items WHERE product_id = $1`, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
