package repository

import (
	"context"
	"time"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
)

// GetScheduleItems 返回某个时段下的所有产品项，按优先级升序排列，
// 优先级相同时按插入顺序排列，每一项都带上关联的产品。
func (r *Repository) GetScheduleItems(scheduleID int64) ([]*domain.ScheduleItem, error) {
	query := `
		SELECT
			si.id,
			si.schedule_id,
			si.product_id,
			si.priority,
			si.is_featured,
			si.created_at,
			p.name,
			p.description,
			p.category,
			p.base_price,
			p.image_url,
			p.is_active,
			p.created_at,
			p.version
		FROM schedule_items si
		JOIN products p ON si.product_id = p.id
		WHERE si.schedule_id = $1
		ORDER BY si.priority, si.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.ScheduleItem, 0)
	for rows.Next() {
		item := &domain.ScheduleItem{Product: &domain.Product{}}
		dst := []any{
			&item.ID,
			&item.ScheduleID,
			&item.ProductID,
			&item.Priority,
			&item.IsFeatured,
			&item.CreatedAt,
			&item.Product.Name,
			&item.Product.Description,
			&item.Product.Category,
			&item.Product.BasePrice,
			&item.Product.ImageURL,
			&item.Product.IsActive,
			&item.Product.CreatedAt,
			&item.Product.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		item.Product.ID = item.ProductID
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *Repository) GetScheduleItemByID(id int64) (*domain.ScheduleItem, error) {
	query := `
		SELECT schedule_id, product_id, priority, is_featured, created_at
		FROM schedule_items WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	item := &domain.ScheduleItem{
		ID: id,
	}

	dst := []any{&item.ScheduleID, &item.ProductID, &item.Priority, &item.IsFeatured, &item.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return item, nil
}

// AddScheduleItems 批量往时段中添加产品，同一次调用的所有行使用相同的优先级和推荐标记。
// 任意一行违反 (schedule_id, product_id) 唯一约束时整批回滚。
func (r *Repository) AddScheduleItems(scheduleID int64, productIDs []int64, priority int32, isFeatured bool) ([]*domain.ScheduleItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO schedule_items (schedule_id, product_id, priority, is_featured)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	items := make([]*domain.ScheduleItem, 0, len(productIDs))
	for _, productID := range productIDs {
		item := &domain.ScheduleItem{
			ScheduleID: scheduleID,
			ProductID:  productID,
			Priority:   priority,
			IsFeatured: isFeatured,
		}
		if err := tx.QueryRowContext(ctx, query, scheduleID, productID, priority, isFeatured).Scan(&item.ID, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *Repository) RemoveScheduleItem(id int64) error {
	query := `
		DELETE FROM schedule_items WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// GetSchedulesForProduct 返回某个产品被分配到的所有启用中的时段。
// 停用的时段即使存在关联行也不会出现在结果里。
func (r *Repository) GetSchedulesForProduct(productID int64) ([]*domain.Schedule, error) {
	query := `
		SELECT
			s.id, s.name, s.type, s.start_time, s.end_time, s.start_date, s.end_date,
			s.day_of_week, s.timezone, s.is_active, s.branch_id, s.created_at, s.version
		FROM schedules s
		JOIN schedule_items si ON si.schedule_id = s.id
		WHERE si.product_id = $1 AND s.is_active = TRUE
		ORDER BY s.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// ReplaceProductAssignments 以整体替换的方式重设某个产品的时段分配：
// 在同一个事务里先删掉该产品的全部关联行，再按传入顺序插入新行（优先级为 0）。
// 传入空列表表示清空该产品的所有分配。
// 读取方不会观察到删完未插完的中间状态。
func (r *Repository) ReplaceProductAssignments(productID int64, scheduleIDs []int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_items WHERE product_id = $1`, productID); err != nil {
		return err
	}

	query := `
		INSERT INTO schedule_items (schedule_id, product_id, priority, is_featured)
		VALUES ($1, $2, 0, FALSE)
	`
	for _, scheduleID := range scheduleIDs {
		if _, err := tx.ExecContext(ctx, query, scheduleID, productID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
