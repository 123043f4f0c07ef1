package repository

import (
	"context"
	"time"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
)

func (r *Repository) GetAllBranches() ([]*domain.Branch, error) {
	query := `
		SELECT id, name, timezone, is_active, created_at, version FROM branches ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	branches := make([]*domain.Branch, 0)
	for rows.Next() {
		b := &domain.Branch{}
		dst := []any{&b.ID, &b.Name, &b.Timezone, &b.IsActive, &b.CreatedAt, &b.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return branches, nil
}

func (r *Repository) GetBranchByID(id int64) (*domain.Branch, error) {
	query := `
		SELECT name, timezone, is_active, created_at, version FROM branches WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	b := &domain.Branch{
		ID: id,
	}

	dst := []any{&b.Name, &b.Timezone, &b.IsActive, &b.CreatedAt, &b.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return b, nil
}

func (r *Repository) CreateBranch(b *domain.Branch) error {
	query := `
		INSERT INTO branches (name, timezone, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, b.Name, b.Timezone, b.IsActive).Scan(&b.ID, &b.CreatedAt, &b.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateBranch(b *domain.Branch) error {
	query := `
		UPDATE branches
		SET
			name = $1,
			timezone = $2,
			is_active = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{b.Name, b.Timezone, b.IsActive, b.ID, b.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&b.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteBranch(id int64) error {
	query := `
		DELETE FROM branches WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
