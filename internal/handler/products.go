package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProductFilter{}

	if category := r.URL.Query().Get("category"); category != "" {
		filter.Category = &category
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

	products, err := h.repository.GetAllProducts(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取产品列表成功", products)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
		Category    string `json:"category" validate:"required"`
		BasePrice   int64  `json:"basePrice" validate:"gte=0"`
		ImageURL    string `json:"imageUrl"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		BasePrice:   req.BasePrice,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}

	if err := h.repository.CreateProduct(product); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "products_name_key":
			h.badRequest(w, r, errors.New("产品名称已存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建产品成功", product)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product := r.Context().Value(ProductCtx).(*domain.Product)
	h.successResponse(w, r, "获取产品信息成功", product)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		BasePrice   *int64  `json:"basePrice" validate:"omitempty,gte=0"`
		ImageURL    *string `json:"imageUrl"`
		IsActive    *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	product := r.Context().Value(ProductCtx).(*domain.Product)

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.BasePrice != nil {
		product.BasePrice = *req.BasePrice
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateProduct(product); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "products_name_key":
			h.badRequest(w, r, errors.New("产品名称已存在"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新产品信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新产品信息成功", product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	product := r.Context().Value(ProductCtx).(*domain.Product)

	if err := h.repository.DeleteProduct(product.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "产品不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除产品成功", nil)
}

func (h *Handler) GetProductSchedules(w http.ResponseWriter, r *http.Request) {
	product := r.Context().Value(ProductCtx).(*domain.Product)

	schedules, err := h.repository.GetSchedulesForProduct(product.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取产品所属时段成功", schedules)
}

func (h *Handler) ReplaceProductSchedules(w http.ResponseWriter, r *http.Request) {
	product := r.Context().Value(ProductCtx).(*domain.Product)

	// scheduleIds 为空列表时表示清空该产品的所有时段分配，
	// 所以这里不能用 required 校验
	var req struct {
		ScheduleIDs []int64 `json:"scheduleIds"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 先确认所有目标时段存在，避免事务里才发现外键错误
	for _, scheduleID := range req.ScheduleIDs {
		if _, err := h.repository.GetScheduleByID(scheduleID); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "时段不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
	}

	if err := h.repository.ReplaceProductAssignments(product.ID, req.ScheduleIDs); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "schedule_items_schedule_id_product_id_key":
			h.badRequest(w, r, errors.New("时段列表中存在重复项"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	schedules, err := h.repository.GetSchedulesForProduct(product.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新产品时段分配成功", schedules)
}
