package seed

import (
	"log/slog"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/repository"
)

func int64Ptr(v int64) *int64 {
	return &v
}

// SeedDemoData 插入一套可以直接演示菜单解析的完整数据：
// 分店、产品、各类时段（包括跨午夜时段和季节时段）以及产品分配。
func SeedDemoData(r *repository.Repository) {
	// 分店
	branches := []*domain.Branch{
		{Name: "北京旗舰店", Timezone: "Asia/Shanghai", IsActive: true},
		{Name: "上海南京路店", Timezone: "Asia/Shanghai", IsActive: true},
		{Name: "新加坡乌节路店", Timezone: "Asia/Singapore", IsActive: true},
	}
	for _, branch := range branches {
		if err := r.CreateBranch(branch); err != nil {
			slog.Error("插入分店失败", "name", branch.Name, "error", err)
			return
		}
	}

	// 产品
	products := []*domain.Product{
		{Name: "豆浆油条套餐", Description: "现磨豆浆配手工油条", Category: "早餐", BasePrice: 1200, IsActive: true},
		{Name: "皮蛋瘦肉粥", Description: "熬足两小时的广式靓粥", Category: "早餐", BasePrice: 1500, IsActive: true},
		{Name: "红烧牛肉面", Description: "牛腩大块，汤头浓郁", Category: "主食", BasePrice: 3200, IsActive: true},
		{Name: "招牌烧鸭饭", Description: "每日现烧，限量供应", Category: "主食", BasePrice: 3800, IsActive: true},
		{Name: "椒盐小龙虾", Description: "夜宵人气王", Category: "夜宵", BasePrice: 8800, IsActive: true},
		{Name: "烤串拼盘", Description: "羊肉串、鸡翅、韭菜任意组合", Category: "夜宵", BasePrice: 5600, IsActive: true},
		{Name: "杨枝甘露", Description: "新鲜芒果配西柚粒", Category: "饮品", BasePrice: 2200, IsActive: true},
		{Name: "手打柠檬茶", Description: "夏季限定冷饮", Category: "饮品", BasePrice: 1800, IsActive: true},
	}
	for _, product := range products {
		if err := r.CreateProduct(product); err != nil {
			slog.Error("插入产品失败", "name", product.Name, "error", err)
			return
		}
	}

	// 时段，覆盖普通时段、跨午夜时段、仅工作日时段和季节时段
	schedules := []*domain.Schedule{
		{
			Name:       "早餐时段",
			Type:       domain.ScheduleTypeTimeSlot,
			StartTime:  "06:00",
			EndTime:    "10:30",
			DaysOfWeek: domain.DaysOfWeek{0, 1, 2, 3, 4, 5, 6},
			Timezone:   "Asia/Shanghai",
			IsActive:   true,
		},
		{
			Name:       "午市时段",
			Type:       domain.ScheduleTypeTimeSlot,
			StartTime:  "11:00",
			EndTime:    "14:00",
			DaysOfWeek: domain.DaysOfWeek{1, 2, 3, 4, 5},
			Timezone:   "Asia/Shanghai",
			IsActive:   true,
		},
		{
			// 跨午夜时段，结束时间早于开始时间
			Name:       "夜宵时段",
			Type:       domain.ScheduleTypeTimeSlot,
			StartTime:  "22:00",
			EndTime:    "02:00",
			DaysOfWeek: domain.DaysOfWeek{0, 1, 2, 3, 4, 5, 6},
			Timezone:   "Asia/Shanghai",
			IsActive:   true,
		},
		{
			Name:      "夏季冷饮",
			Type:      domain.ScheduleTypeSeasonal,
			StartDate: "2026-06-01",
			EndDate:   "2026-08-31",
			Timezone:  "Asia/Shanghai",
			IsActive:  true,
		},
		{
			// 只在新加坡门店生效的分店专属时段
			Name:       "乌节路午市",
			Type:       domain.ScheduleTypeTimeSlot,
			StartTime:  "11:30",
			EndTime:    "14:30",
			DaysOfWeek: domain.DaysOfWeek{1, 2, 3, 4, 5, 6},
			Timezone:   "Asia/Singapore",
			IsActive:   true,
			BranchID:   int64Ptr(branches[2].ID),
		},
	}
	for _, schedule := range schedules {
		if err := r.CreateSchedule(schedule); err != nil {
			slog.Error("插入时段失败", "name", schedule.Name, "error", err)
			return
		}
	}

	// 产品分配
	assignments := []struct {
		schedule   *domain.Schedule
		productIDs []int64
		priority   int32
		isFeatured bool
	}{
		{schedules[0], []int64{products[0].ID, products[1].ID}, 0, true},
		{schedules[1], []int64{products[2].ID, products[3].ID}, 0, false},
		{schedules[1], []int64{products[6].ID}, 1, false},
		{schedules[2], []int64{products[4].ID, products[5].ID}, 0, true},
		{schedules[3], []int64{products[6].ID, products[7].ID}, 0, false},
		{schedules[4], []int64{products[3].ID, products[6].ID}, 0, false},
	}
	for _, a := range assignments {
		if _, err := r.AddScheduleItems(a.schedule.ID, a.productIDs, a.priority, a.isFeatured); err != nil {
			slog.Error("插入产品分配失败", "schedule", a.schedule.Name, "error", err)
			return
		}
	}

	slog.Info("插入演示数据完成",
		"branches", len(branches),
		"products", len(products),
		"schedules", len(schedules),
	)
}
