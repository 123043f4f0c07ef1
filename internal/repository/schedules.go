package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
)

// ScheduleFilter 的字段为 nil 时表示不过滤对应条件。
type ScheduleFilter struct {
	Type     *domain.ScheduleType
	IsActive *bool
	BranchID *int64 // 指定分店时会同时返回总部全局规则
}

const scheduleColumns = `
	id, name, type, start_time, end_time, start_date, end_date,
	day_of_week, timezone, is_active, branch_id, created_at, version
`

func scanSchedule(scanner interface{ Scan(dst ...any) error }) (*domain.Schedule, error) {
	var s domain.Schedule
	var startTime, endTime, startDate, endDate, daysRaw sql.NullString
	var branchID sql.NullInt64

	dst := []any{
		&s.ID,
		&s.Name,
		&s.Type,
		&startTime,
		&endTime,
		&startDate,
		&endDate,
		&daysRaw,
		&s.Timezone,
		&s.IsActive,
		&branchID,
		&s.CreatedAt,
		&s.Version,
	}
	if err := scanner.Scan(dst...); err != nil {
		return nil, err
	}

	s.StartTime = startTime.String
	s.EndTime = endTime.String
	s.StartDate = startDate.String
	s.EndDate = endDate.String
	// 文本列里存的是 JSON 数组，旧数据可能是空串或非法 JSON，按空集合处理
	s.DaysOfWeek = domain.DecodeDaysOfWeek(daysRaw.String, domain.DaysOfWeek{})
	if branchID.Valid {
		s.BranchID = &branchID.Int64
	}

	return &s, nil
}

func (r *Repository) GetAllSchedules(filter ScheduleFilter) ([]*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE 1 = 1`
	args := []any{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		query += fmt.Sprintf(" AND (branch_id IS NULL OR branch_id = $%d)", len(args))
	}

	query += " ORDER BY id"

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
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

// GetActiveSchedules 返回菜单解析所需的候选规则：
// 仅启用中的规则，可按类型过滤；指定分店时包含总部全局规则。
func (r *Repository) GetActiveSchedules(typeFilter *domain.ScheduleType, branchID *int64) ([]*domain.Schedule, error) {
	isActive := true
	return r.GetAllSchedules(ScheduleFilter{
		Type:     typeFilter,
		IsActive: &isActive,
		BranchID: branchID,
	})
}

func (r *Repository) GetScheduleByID(id int64) (*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanSchedule(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) CreateSchedule(s *domain.Schedule) error {
	query := `
		INSERT INTO schedules (name, type, start_time, end_time, start_date, end_date, day_of_week, timezone, is_active, branch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		s.Name,
		s.Type,
		nullString(s.StartTime),
		nullString(s.EndTime),
		nullString(s.StartDate),
		nullString(s.EndDate),
		s.DaysOfWeek.Encode(),
		s.Timezone,
		s.IsActive,
		s.BranchID,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateSchedule(s *domain.Schedule) error {
	query := `
		UPDATE schedules
		SET
			name = $1,
			start_time = $2,
			end_time = $3,
			start_date = $4,
			end_date = $5,
			day_of_week = $6,
			timezone = $7,
			is_active = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		s.Name,
		nullString(s.StartTime),
		nullString(s.EndTime),
		nullString(s.StartDate),
		nullString(s.EndDate),
		s.DaysOfWeek.Encode(),
		s.Timezone,
		s.IsActive,
		s.ID,
		s.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&s.Version); err != nil {
		return err
	}

	return nil
}

// DeleteSchedule 在同一个事务里先删除该时段的所有产品关联再删除时段本身，
// 不会留下指向已删除时段的孤儿关联行。
func (r *Repository) DeleteSchedule(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_items WHERE schedule_id = $1`, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
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

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
