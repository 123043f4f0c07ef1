package domain

import (
	"encoding/json"
	"time"
)

type ScheduleType string

const (
	ScheduleTypeTimeSlot ScheduleType = "TIME_SLOT"
	ScheduleTypeSeasonal ScheduleType = "SEASONAL"
)

// DaysOfWeek 表示时段适用的星期集合，0 表示星期日。
// 数据库中以 JSON 数组字符串的形式存储在文本列中。
type DaysOfWeek []int32

// DecodeDaysOfWeek 从文本列中解码星期集合。
// 旧数据中存在空串和非法 JSON，这里解码失败时返回调用方提供的默认值而不是报错。
func DecodeDaysOfWeek(raw string, fallback DaysOfWeek) DaysOfWeek {
	if raw == "" {
		return fallback
	}

	var days DaysOfWeek
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return fallback
	}

	return days
}

// Encode 将星期集合编码为存储用的 JSON 字符串。
func (d DaysOfWeek) Encode() string {
	if len(d) == 0 {
		return "[]"
	}

	b, err := json.Marshal(d)
	if err != nil {
		return "[]"
	}

	return string(b)
}

func (d DaysOfWeek) Contains(day int32) bool {
	for _, v := range d {
		if v == day {
			return true
		}
	}
	return false
}

// Schedule 表示一条菜单生效规则：
// TIME_SLOT 表示每日重复的时间窗口（可能跨越午夜），SEASONAL 表示绝对日期区间。
// BranchID 为 nil 时表示总部全局规则，对所有分店生效。
type Schedule struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	Type       ScheduleType `json:"type"`
	StartTime  string       `json:"startTime,omitempty"` // HH:MM，仅 TIME_SLOT
	EndTime    string       `json:"endTime,omitempty"`   // HH:MM，结束早于开始表示跨午夜
	StartDate  string       `json:"startDate,omitempty"` // YYYY-MM-DD，仅 SEASONAL
	EndDate    string       `json:"endDate,omitempty"`   // YYYY-MM-DD
	DaysOfWeek DaysOfWeek   `json:"daysOfWeek,omitempty"`
	Timezone   string       `json:"timezone"`
	IsActive   bool         `json:"isActive"`
	BranchID   *int64       `json:"branchID"`
	CreatedAt  time.Time    `json:"createdAt"`
	Version    int32        `json:"-"`
}

// ScheduleItem 表示某个时段与某个产品之间的关联。
// Priority 仅用于展示排序，数值越小越靠前；IsFeatured 仅作标记，不影响是否出现在菜单中。
type ScheduleItem struct {
	ID         int64     `json:"id"`
	ScheduleID int64     `json:"scheduleID"`
	ProductID  int64     `json:"productID"`
	Priority   int32     `json:"priority"`
	IsFeatured bool      `json:"isFeatured"`
	CreatedAt  time.Time `json:"createdAt"`

	Product *Product `json:"product,omitempty"`
}
