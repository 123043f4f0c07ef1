package resolver

import (
	"sort"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/utils"
)

// Resolver 对一组候选时段规则计算当前生效集合。
// 它是一个纯内存计算，不做任何 I/O，候选规则由调用方从 repository 取出后传入。
type Resolver struct {
	schedules []*domain.Schedule
	opts      Options
}

func New(schedules []*domain.Schedule, opts Options) *Resolver {
	return &Resolver{
		schedules: schedules,
		opts:      opts,
	}
}

// ActiveSchedules 返回当前生效的时段，保持传入时的顺序。
func (r *Resolver) ActiveSchedules() []*domain.Schedule {
	active := make([]*domain.Schedule, 0)

	for _, s := range r.schedules {
		if r.opts.TypeFilter != "" && s.Type != r.opts.TypeFilter {
			continue
		}
		if !s.IsActive {
			continue
		}
		if r.isActive(s) {
			active = append(active, s)
		}
	}

	return active
}

func (r *Resolver) isActive(s *domain.Schedule) bool {
	switch s.Type {
	case domain.ScheduleTypeTimeSlot:
		return r.timeSlotActive(s)
	case domain.ScheduleTypeSeasonal:
		return utils.IsDateInRange(r.effectiveDate(s), s.StartDate, s.EndDate)
	default:
		// 未知类型永远不生效
		return false
	}
}

func (r *Resolver) timeSlotActive(s *domain.Schedule) bool {
	clock := r.opts.Time
	if clock == "" {
		clock = utils.FormatClock(utils.CurrentTimeIn(s.Timezone, r.opts.Now))
	}

	if !utils.IsTimeInRange(clock, s.StartTime, s.EndTime) {
		return false
	}

	// 没有指定适用星期时视为每天都生效
	if len(s.DaysOfWeek) == 0 {
		return true
	}

	day, ok := utils.DayOfWeek(r.effectiveDate(s))
	if !ok {
		return false
	}

	return s.DaysOfWeek.Contains(day)
}

// effectiveDate 返回该规则用于比较的日期：
// 调用方显式指定的日期优先，否则取该规则时区下的当天。
func (r *Resolver) effectiveDate(s *domain.Schedule) string {
	if r.opts.Date != "" {
		return r.opts.Date
	}

	return utils.FormatDate(utils.CurrentTimeIn(s.Timezone, r.opts.Now))
}

// FlattenProducts 将各生效时段的产品项压平成一个产品列表：
// 按产品去重（同一产品挂在多个同时生效的时段下只出现一次），
// 按优先级升序排序，优先级相同时保持最先取到的顺序。
// 产品字段原样返回，不做任何价格加工。
func FlattenProducts(groups []Group) []*domain.Product {
	type entry struct {
		product  *domain.Product
		priority int32
		order    int
	}

	seen := make(map[int64]bool)
	entries := make([]entry, 0)

	for _, group := range groups {
		for _, item := range group.Items {
			if item.Product == nil {
				continue
			}
			if seen[item.ProductID] {
				continue
			}
			seen[item.ProductID] = true
			entries = append(entries, entry{
				product:  item.Product,
				priority: item.Priority,
				order:    len(entries),
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority < entries[j].priority
	})

	products := make([]*domain.Product, 0, len(entries))
	for _, e := range entries {
		products = append(products, e.product)
	}

	return products
}
