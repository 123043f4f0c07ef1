package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/repository"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) GetAllSchedules(w http.ResponseWriter, r *http.Request) {
	filter := repository.ScheduleFilter{}

	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		scheduleType := domain.ScheduleType(typeParam)
		if scheduleType != domain.ScheduleTypeTimeSlot && scheduleType != domain.ScheduleTypeSeasonal {
			h.errorResponse(w, r, "type 参数无效")
			return
		}
		filter.Type = &scheduleType
	}
	if isActiveParam := r.URL.Query().Get("is_active"); isActiveParam != "" {
		switch isActiveParam {
		case "true":
			isActive := true
			filter.IsActive = &isActive
		case "false":
			isActive := false
			filter.IsActive = &isActive
		default:
			h.errorResponse(w, r, "is_active 参数无效")
			return
		}
	}
	if branchIDParam := r.URL.Query().Get("branch_id"); branchIDParam != "" {
		branchID, err := strconv.ParseInt(branchIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "branch_id 参数无效")
			return
		}
		filter.BranchID = &branchID
	}

	schedules, err := h.repository.GetAllSchedules(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取时段列表成功", schedules)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string  `json:"name" validate:"required,min=2,max=100"`
		Type       string  `json:"type" validate:"required,oneof=TIME_SLOT SEASONAL"`
		StartTime  string  `json:"startTime"`
		EndTime    string  `json:"endTime"`
		StartDate  string  `json:"startDate"`
		EndDate    string  `json:"endDate"`
		DaysOfWeek []int32 `json:"daysOfWeek"`
		Timezone   string  `json:"timezone"`
		BranchID   *int64  `json:"branchId"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule := &domain.Schedule{
		Name:       req.Name,
		Type:       domain.ScheduleType(req.Type),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		DaysOfWeek: domain.DaysOfWeek(req.DaysOfWeek),
		Timezone:   req.Timezone,
		IsActive:   true,
		BranchID:   req.BranchID,
	}

	// 按类型区分的交叉校验，非法时区在这里被重置为 UTC
	if err := utils.ValidateScheduleInput(schedule); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.CreateSchedule(schedule); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "schedules_branch_id_fkey":
			h.badRequest(w, r, errors.New("分店不存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建时段成功", schedule)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)
	h.successResponse(w, r, "获取时段信息成功", schedule)
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       *string            `json:"name"`
		StartTime  *string            `json:"startTime"`
		EndTime    *string            `json:"endTime"`
		StartDate  *string            `json:"startDate"`
		EndDate    *string            `json:"endDate"`
		DaysOfWeek *domain.DaysOfWeek `json:"daysOfWeek"`
		Timezone   *string            `json:"timezone"`
		IsActive   *bool              `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	update := &utils.ScheduleUpdate{
		Name:       req.Name,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		DaysOfWeek: req.DaysOfWeek,
		Timezone:   req.Timezone,
		IsActive:   req.IsActive,
	}
	if err := utils.ValidateScheduleUpdate(update); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if req.Name != nil {
		schedule.Name = *req.Name
	}
	if req.StartTime != nil {
		schedule.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		schedule.EndTime = *req.EndTime
	}
	if req.StartDate != nil {
		schedule.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		schedule.EndDate = *req.EndDate
	}
	if req.DaysOfWeek != nil {
		schedule.DaysOfWeek = *req.DaysOfWeek
	}
	if req.Timezone != nil {
		schedule.Timezone = *req.Timezone
	}
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateSchedule(schedule); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新时段信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新时段信息成功", schedule)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if err := h.repository.DeleteSchedule(schedule.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "时段不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除时段成功", nil)
}

func (h *Handler) GetScheduleItems(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	items, err := h.repository.GetScheduleItems(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取时段产品列表成功", items)
}

func (h *Handler) AddScheduleItems(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		ProductIDs []int64 `json:"productIds" validate:"required,min=1"`
		Priority   int32   `json:"priority" validate:"gte=0"`
		IsFeatured bool    `json:"isFeatured"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	items, err := h.repository.AddScheduleItems(schedule.ID, req.ProductIDs, req.Priority, req.IsFeatured)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "schedule_items_schedule_id_product_id_key":
				h.badRequest(w, r, errors.New("产品已在该时段中"))
			case pgErr.ConstraintName == "schedule_items_product_id_fkey":
				h.badRequest(w, r, errors.New("产品不存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "添加时段产品成功", items)
}

// RemoveScheduleItem 删除单个时段产品项。
// 分店经理只能操作自己分店（或总部全局）的时段，跨分店操作返回 403 而不是伪装成不存在。
func (h *Handler) RemoveScheduleItem(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	itemIDParam := chi.URLParam(r, "id")
	itemID, err := strconv.ParseInt(itemIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "产品项ID无效")
		return
	}

	item, err := h.repository.GetScheduleItemByID(itemID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "产品项不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if myInfo.Role == domain.RoleBranchManager {
		schedule, err := h.repository.GetScheduleByID(item.ScheduleID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if schedule.BranchID != nil && (myInfo.BranchID == nil || *myInfo.BranchID != *schedule.BranchID) {
			h.forbiddenResponse(w, r, "无权操作其他分店的时段")
			return
		}
	}

	if err := h.repository.RemoveScheduleItem(itemID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除时段产品成功", nil)
}
