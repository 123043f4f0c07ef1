package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) GetAllBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.repository.GetAllBranches()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取分店列表成功", branches)
}

func (h *Handler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Timezone string `json:"timezone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 时区为空时默认使用 UTC
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}
	if !utils.IsValidTimezone(req.Timezone) {
		h.errorResponse(w, r, "无效的时区")
		return
	}

	branch := &domain.Branch{
		Name:     req.Name,
		Timezone: req.Timezone,
		IsActive: true,
	}

	if err := h.repository.CreateBranch(branch); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "branches_name_key":
			h.badRequest(w, r, errors.New("分店名称已存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建分店成功", branch)
}

func (h *Handler) GetBranch(w http.ResponseWriter, r *http.Request) {
	branch := r.Context().Value(BranchCtx).(*domain.Branch)
	h.successResponse(w, r, "获取分店信息成功", branch)
}

func (h *Handler) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string `json:"name"`
		Timezone *string `json:"timezone"`
		IsActive *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	branch := r.Context().Value(BranchCtx).(*domain.Branch)

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Timezone != nil {
		if !utils.IsValidTimezone(*req.Timezone) {
			h.errorResponse(w, r, "无效的时区")
			return
		}
		branch.Timezone = *req.Timezone
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateBranch(branch); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "branches_name_key":
			h.badRequest(w, r, errors.New("分店名称已存在"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新分店信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新分店信息成功", branch)
}

func (h *Handler) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	branch := r.Context().Value(BranchCtx).(*domain.Branch)

	if err := h.repository.DeleteBranch(branch.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除分店成功", nil)
}
