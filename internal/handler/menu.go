package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/resolver"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/utils"
)

// parseMenuOptions 解析菜单查询的公共查询参数。
// time 和 date 都是可选的覆盖值，不传时按每条规则自己的时区取当前时刻。
func (h *Handler) parseMenuOptions(w http.ResponseWriter, r *http.Request) (resolver.Options, bool) {
	opts := resolver.Options{
		Now: time.Now(),
	}

	if timeParam := r.URL.Query().Get("time"); timeParam != "" {
		clock, ok := utils.ParseClockParam(timeParam)
		if !ok {
			h.errorResponse(w, r, "time 参数格式错误，应为 HH:MM")
			return opts, false
		}
		opts.Time = clock
	}

	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		if !utils.MatchDatePattern(dateParam) {
			h.errorResponse(w, r, "date 参数格式错误，应为 YYYY-MM-DD")
			return opts, false
		}
		// 格式对但日期本身非法（如 2024-02-30）也要拒绝
		if _, ok := utils.DayOfWeek(dateParam); !ok {
			h.errorResponse(w, r, "date 参数不是一个有效的日期")
			return opts, false
		}
		opts.Date = dateParam
	}

	switch typeParam := r.URL.Query().Get("schedule_type"); typeParam {
	case "", "ALL":
		// 不过滤
	case string(domain.ScheduleTypeTimeSlot), string(domain.ScheduleTypeSeasonal):
		opts.TypeFilter = domain.ScheduleType(typeParam)
	default:
		h.errorResponse(w, r, "schedule_type 参数无效")
		return opts, false
	}

	return opts, true
}

func (h *Handler) parseBranchIDParam(w http.ResponseWriter, r *http.Request) (*int64, bool) {
	branchIDParam := r.URL.Query().Get("branch_id")
	if branchIDParam == "" {
		return nil, true
	}

	branchID, err := strconv.ParseInt(branchIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "branch_id 参数无效")
		return nil, false
	}

	return &branchID, true
}

// resolveMenu 取出候选规则并计算生效集合，再为每个生效时段取出产品项。
// 没有任何时段生效时返回空分组，不算错误。
func (h *Handler) resolveMenu(opts resolver.Options, branchID *int64) ([]resolver.Group, error) {
	var typeFilter *domain.ScheduleType
	if opts.TypeFilter != "" {
		typeFilter = &opts.TypeFilter
	}

	candidates, err := h.repository.GetActiveSchedules(typeFilter, branchID)
	if err != nil {
		return nil, err
	}

	active := resolver.New(candidates, opts).ActiveSchedules()

	groups := make([]resolver.Group, 0, len(active))
	for _, schedule := range active {
		items, err := h.repository.GetScheduleItems(schedule.ID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, resolver.Group{
			Schedule: schedule,
			Items:    items,
		})
	}

	return groups, nil
}

// GetActiveMenu 返回当前生效的压平菜单：
// 跨时段按产品去重，按优先级升序排列。
func (h *Handler) GetActiveMenu(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.parseMenuOptions(w, r)
	if !ok {
		return
	}
	branchID, ok := h.parseBranchIDParam(w, r)
	if !ok {
		return
	}

	groups, err := h.resolveMenu(opts, branchID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取当前菜单成功", resolver.FlattenProducts(groups))
}

// GetTimeBasedMenu 返回按时段分组的菜单视图，分组之间不做产品去重，
// 同一产品挂在多个同时生效的时段下会在每个分组里都出现。
func (h *Handler) GetTimeBasedMenu(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.parseMenuOptions(w, r)
	if !ok {
		return
	}
	branchID, ok := h.parseBranchIDParam(w, r)
	if !ok {
		return
	}

	groups, err := h.resolveMenu(opts, branchID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取分时段菜单成功", h.buildTimeBasedMenu(opts, groups))
}

// GetMyBranchMenu 返回当前登录分店经理所属分店的压平菜单。
func (h *Handler) GetMyBranchMenu(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if myInfo.BranchID == nil {
		h.errorResponse(w, r, "当前账号未绑定分店")
		return
	}

	opts, ok := h.parseMenuOptions(w, r)
	if !ok {
		return
	}

	groups, err := h.resolveMenu(opts, myInfo.BranchID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取本分店菜单成功", resolver.FlattenProducts(groups))
}

type timeBasedMenuSchedule struct {
	ID       int64               `json:"id"`
	Name     string              `json:"name"`
	Type     domain.ScheduleType `json:"type"`
	Timezone string              `json:"timezone"`
}

type timeBasedMenuGroup struct {
	Schedule  timeBasedMenuSchedule  `json:"schedule"`
	Items     []*domain.ScheduleItem `json:"items"`
	ItemCount int                    `json:"itemCount"`
}

type timeBasedMenu struct {
	CurrentTime     string               `json:"currentTime"`
	CurrentDate     string               `json:"currentDate"`
	ActiveSchedules int                  `json:"activeSchedules"`
	Schedules       []timeBasedMenuGroup `json:"schedules"`
}

func (h *Handler) buildTimeBasedMenu(opts resolver.Options, groups []resolver.Group) timeBasedMenu {
	// 各规则可能处于不同时区，响应里的当前时刻统一按 UTC 报告，
	// 调用方显式传入的覆盖值则原样回显
	currentTime := opts.Time
	if currentTime == "" {
		currentTime = utils.FormatClock(opts.Now.UTC())
	}
	currentDate := opts.Date
	if currentDate == "" {
		currentDate = utils.FormatDate(opts.Now.UTC())
	}

	menu := timeBasedMenu{
		CurrentTime:     currentTime,
		CurrentDate:     currentDate,
		ActiveSchedules: len(groups),
		Schedules:       make([]timeBasedMenuGroup, 0, len(groups)),
	}

	for _, group := range groups {
		menu.Schedules = append(menu.Schedules, timeBasedMenuGroup{
			Schedule: timeBasedMenuSchedule{
				ID:       group.Schedule.ID,
				Name:     group.Schedule.Name,
				Type:     group.Schedule.Type,
				Timezone: group.Schedule.Timezone,
			},
			Items:     group.Items,
			ItemCount: len(group.Items),
		})
	}

	return menu
}
