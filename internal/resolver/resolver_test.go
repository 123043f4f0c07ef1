package resolver

import (
	"testing"
	"time"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeSlot(id int64, name, start, end string, days domain.DaysOfWeek) *domain.Schedule {
	return &domain.Schedule{
		ID:         id,
		Name:       name,
		Type:       domain.ScheduleTypeTimeSlot,
		StartTime:  start,
		EndTime:    end,
		DaysOfWeek: days,
		Timezone:   "UTC",
		IsActive:   true,
	}
}

func seasonal(id int64, name, startDate, endDate string) *domain.Schedule {
	return &domain.Schedule{
		ID:        id,
		Name:      name,
		Type:      domain.ScheduleTypeSeasonal,
		StartDate: startDate,
		EndDate:   endDate,
		Timezone:  "UTC",
		IsActive:  true,
	}
}

func activeIDs(schedules []*domain.Schedule) []int64 {
	ids := make([]int64, 0, len(schedules))
	for _, s := range schedules {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestActiveSchedulesTimeSlot(t *testing.T) {
	breakfast := timeSlot(1, "早餐时段", "06:00", "11:00", nil)

	t.Run("窗口内生效", func(t *testing.T) {
		r := New([]*domain.Schedule{breakfast}, Options{Time: "07:30", Date: "2026-07-01"})
		assert.Equal(t, []int64{1}, activeIDs(r.ActiveSchedules()))
	})

	t.Run("窗口外不生效", func(t *testing.T) {
		r := New([]*domain.Schedule{breakfast}, Options{Time: "12:00", Date: "2026-07-01"})
		assert.Empty(t, r.ActiveSchedules())
	})

	t.Run("两端都是闭区间", func(t *testing.T) {
		r := New([]*domain.Schedule{breakfast}, Options{Time: "06:00", Date: "2026-07-01"})
		assert.Equal(t, []int64{1}, activeIDs(r.ActiveSchedules()))

		r = New([]*domain.Schedule{breakfast}, Options{Time: "11:00", Date: "2026-07-01"})
		assert.Equal(t, []int64{1}, activeIDs(r.ActiveSchedules()))
	})

	t.Run("停用的时段永远不生效", func(t *testing.T) {
		disabled := timeSlot(2, "停用时段", "06:00", "11:00", nil)
		disabled.IsActive = false
		r := New([]*domain.Schedule{disabled}, Options{Time: "07:30", Date: "2026-07-01"})
		assert.Empty(t, r.ActiveSchedules())
	})

	t.Run("未知类型永远不生效", func(t *testing.T) {
		unknown := timeSlot(3, "未知类型", "06:00", "11:00", nil)
		unknown.Type = "HAPPY_HOUR"
		r := New([]*domain.Schedule{unknown}, Options{Time: "07:30", Date: "2026-07-01"})
		assert.Empty(t, r.ActiveSchedules())
	})
}

func TestActiveSchedulesOvernight(t *testing.T) {
	lateNight := timeSlot(1, "夜宵时段", "22:00", "02:00", nil)

	for _, clock := range []string{"22:00", "23:00", "00:30", "02:00"} {
		r := New([]*domain.Schedule{lateNight}, Options{Time: clock, Date: "2026-07-01"})
		assert.Equal(t, []int64{1}, activeIDs(r.ActiveSchedules()), "clock: %s", clock)
	}

	for _, clock := range []string{"02:01", "12:00", "21:59"} {
		r := New([]*domain.Schedule{lateNight}, Options{Time: clock, Date: "2026-07-01"})
		assert.Empty(t, r.ActiveSchedules(), "clock: %s", clock)
	}
}

func TestActiveSchedulesDaysOfWeek(t *testing.T) {
	// 2026-07-04 是星期六，2026-07-06 是星期一
	weekdayLunch := timeSlot(1, "工作日午市", "11:00", "14:00", domain.DaysOfWeek{1, 2, 3, 4, 5})

	r := New([]*domain.Schedule{weekdayLunch}, Options{Time: "12:00", Date: "2026-07-06"})
	assert.Equal(t, []int64{1}, activeIDs(r.ActiveSchedules()))

	r = New([]*domain.Schedule{weekdayLunch}, Options{Time: "12:00", Date: "2026-07-04"})
	assert.Empty(t, r.ActiveSchedules())

	// 没有指定星期时每天都生效
	daily := timeSlot(2, "全天档", "11:00", "14:00", nil)
	r = New([]*domain.Schedule{daily}, Options{Time: "12:00", Date: "2026-07-04"})
	assert.Equal(t, []int64{2}, activeIDs(r.ActiveSchedules()))
}

func TestActiveSchedulesSeasonal(t *testing.T) {
	summer := seasonal(1, "夏季冷饮", "2026-06-01", "2026-08-31")

	// 日期区间两端都是闭区间
	for _, date := range []string{"2026-06-01", "2026-07-15", "2026-08-31"} {
		r := New([]*domain.Schedule{summer}, Options{Date: date})
		assert.Equal(t, []int64{1}, activeIDs(r.ActiveSchedules()), "date: %s", date)
	}

	for _, date := range []string{"2026-05-31", "2026-09-01"} {
		r := New([]*domain.Schedule{summer}, Options{Date: date})
		assert.Empty(t, r.ActiveSchedules(), "date: %s", date)
	}
}

func TestActiveSchedulesTimezone(t *testing.T) {
	// UTC 23:30 在上海已经是次日 07:30
	now := time.Date(2026, 7, 1, 23, 30, 0, 0, time.UTC)

	shanghaiBreakfast := timeSlot(1, "上海早餐", "06:00", "11:00", nil)
	shanghaiBreakfast.Timezone = "Asia/Shanghai"
	utcBreakfast := timeSlot(2, "UTC早餐", "06:00", "11:00", nil)

	r := New([]*domain.Schedule{shanghaiBreakfast, utcBreakfast}, Options{Now: now})
	assert.Equal(t, []int64{1}, activeIDs(r.ActiveSchedules()))
}

func TestActiveSchedulesTypeFilter(t *testing.T) {
	schedules := []*domain.Schedule{
		timeSlot(1, "全天档", "00:01", "23:59", nil),
		seasonal(2, "夏季冷饮", "2026-06-01", "2026-08-31"),
	}

	r := New(schedules, Options{Time: "12:00", Date: "2026-07-01"})
	assert.Equal(t, []int64{1, 2}, activeIDs(r.ActiveSchedules()))

	r = New(schedules, Options{Time: "12:00", Date: "2026-07-01", TypeFilter: domain.ScheduleTypeTimeSlot})
	assert.Equal(t, []int64{1}, activeIDs(r.ActiveSchedules()))

	r = New(schedules, Options{Time: "12:00", Date: "2026-07-01", TypeFilter: domain.ScheduleTypeSeasonal})
	assert.Equal(t, []int64{2}, activeIDs(r.ActiveSchedules()))
}

func TestActiveSchedulesEmptyResult(t *testing.T) {
	// 没有任何时段生效时返回空集合而不是 nil 或错误
	r := New(nil, Options{Time: "12:00", Date: "2026-07-01"})
	active := r.ActiveSchedules()
	require.NotNil(t, active)
	assert.Empty(t, active)
}

func TestFlattenProducts(t *testing.T) {
	noodles := &domain.Product{ID: 101, Name: "红烧牛肉面"}
	duck := &domain.Product{ID: 102, Name: "招牌烧鸭饭"}
	tea := &domain.Product{ID: 103, Name: "手打柠檬茶"}

	item := func(productID int64, priority int32, p *domain.Product) *domain.ScheduleItem {
		return &domain.ScheduleItem{ProductID: productID, Priority: priority, Product: p}
	}

	t.Run("按产品去重并按优先级升序", func(t *testing.T) {
		groups := []Group{
			{Items: []*domain.ScheduleItem{item(101, 2, noodles), item(102, 0, duck)}},
			// 同一产品出现在第二个时段里，优先级不同，只保留首次出现的
			{Items: []*domain.ScheduleItem{item(101, 0, noodles), item(103, 1, tea)}},
		}

		products := FlattenProducts(groups)
		require.Len(t, products, 3)
		assert.Equal(t, []int64{102, 103, 101}, []int64{products[0].ID, products[1].ID, products[2].ID})
	})

	t.Run("优先级相同时保持先到顺序", func(t *testing.T) {
		groups := []Group{
			{Items: []*domain.ScheduleItem{item(102, 0, duck), item(101, 0, noodles), item(103, 0, tea)}},
		}

		products := FlattenProducts(groups)
		require.Len(t, products, 3)
		assert.Equal(t, []int64{102, 101, 103}, []int64{products[0].ID, products[1].ID, products[2].ID})
	})

	t.Run("缺失产品的项被跳过", func(t *testing.T) {
		groups := []Group{
			{Items: []*domain.ScheduleItem{item(101, 0, noodles), item(999, 0, nil)}},
		}

		products := FlattenProducts(groups)
		require.Len(t, products, 1)
		assert.Equal(t, int64(101), products[0].ID)
	})

	t.Run("空分组返回空列表", func(t *testing.T) {
		products := FlattenProducts(nil)
		require.NotNil(t, products)
		assert.Empty(t, products)
	})
}
