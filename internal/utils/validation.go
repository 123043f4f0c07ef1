package utils

import (
	"fmt"
	"regexp"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
)

var (
	timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidateScheduleInput 校验新建时段时按类型区分的必填字段。
// 名称长度等通用字段交给 handler 层的 validator 标签，这里只做类型相关的交叉校验。
// 时区非法或缺失时会被重置为 UTC 而不是报错。
func ValidateScheduleInput(s *domain.Schedule) error {
	switch s.Type {
	case domain.ScheduleTypeTimeSlot:
		if s.StartTime == "" || s.EndTime == "" {
			return fmt.Errorf("固定时段必须提供开始时间和结束时间")
		}
		if !timePattern.MatchString(s.StartTime) {
			return fmt.Errorf("开始时间格式错误，应为 HH:MM")
		}
		if !timePattern.MatchString(s.EndTime) {
			return fmt.Errorf("结束时间格式错误，应为 HH:MM")
		}
		// 开始等于结束的窗口无法解释为全天或零长度，直接拒绝；
		// 结束早于开始是合法的跨午夜窗口
		if !ValidateTimeRange(s.StartTime, s.EndTime) {
			return fmt.Errorf("开始时间和结束时间不能相同")
		}
		if err := validateDaysOfWeek(s.DaysOfWeek, true); err != nil {
			return err
		}
	case domain.ScheduleTypeSeasonal:
		if s.StartDate == "" || s.EndDate == "" {
			return fmt.Errorf("季节时段必须提供开始日期和结束日期")
		}
		if !datePattern.MatchString(s.StartDate) {
			return fmt.Errorf("开始日期格式错误，应为 YYYY-MM-DD")
		}
		if !datePattern.MatchString(s.EndDate) {
			return fmt.Errorf("结束日期格式错误，应为 YYYY-MM-DD")
		}
		if !ValidateDateRange(s.StartDate, s.EndDate) {
			return fmt.Errorf("结束日期必须晚于开始日期")
		}
	default:
		return fmt.Errorf("未知的时段类型: %s", s.Type)
	}

	if !IsValidTimezone(s.Timezone) {
		s.Timezone = "UTC"
	}

	return nil
}

// ScheduleUpdate 表示部分更新请求，nil 字段表示不修改。
type ScheduleUpdate struct {
	Name       *string
	StartTime  *string
	EndTime    *string
	StartDate  *string
	EndDate    *string
	DaysOfWeek *domain.DaysOfWeek
	Timezone   *string
	IsActive   *bool
}

// ValidateScheduleUpdate 校验部分更新：所有字段可选。
// 只有当一对时间（或日期）在同一次请求中都出现时才做区间交叉校验，
// 只改一半时按原样接受。
func ValidateScheduleUpdate(u *ScheduleUpdate) error {
	if u.StartTime != nil && !timePattern.MatchString(*u.StartTime) {
		return fmt.Errorf("开始时间格式错误，应为 HH:MM")
	}
	if u.EndTime != nil && !timePattern.MatchString(*u.EndTime) {
		return fmt.Errorf("结束时间格式错误，应为 HH:MM")
	}
	if u.StartTime != nil && u.EndTime != nil && !ValidateTimeRange(*u.StartTime, *u.EndTime) {
		return fmt.Errorf("开始时间和结束时间不能相同")
	}

	if u.StartDate != nil && !datePattern.MatchString(*u.StartDate) {
		return fmt.Errorf("开始日期格式错误，应为 YYYY-MM-DD")
	}
	if u.EndDate != nil && !datePattern.MatchString(*u.EndDate) {
		return fmt.Errorf("结束日期格式错误，应为 YYYY-MM-DD")
	}
	if u.StartDate != nil && u.EndDate != nil && !ValidateDateRange(*u.StartDate, *u.EndDate) {
		return fmt.Errorf("结束日期必须晚于开始日期")
	}

	if u.DaysOfWeek != nil {
		if err := validateDaysOfWeek(*u.DaysOfWeek, false); err != nil {
			return err
		}
	}

	if u.Timezone != nil && !IsValidTimezone(*u.Timezone) {
		return fmt.Errorf("无效的时区: %s", *u.Timezone)
	}

	return nil
}

// 新建时 daysOfWeek 必填且至少一项；更新时允许为空（解释为不限星期）
func validateDaysOfWeek(days domain.DaysOfWeek, requireNonEmpty bool) error {
	if len(days) == 0 {
		if requireNonEmpty {
			return fmt.Errorf("固定时段必须至少指定一个适用星期")
		}
		return nil
	}

	if len(days) > 7 {
		return fmt.Errorf("适用星期最多只能有 7 项")
	}

	seen := make(map[int32]bool)
	for _, day := range days {
		if day < 0 || day > 6 {
			return fmt.Errorf("适用星期必须在 0 到 6 之间（0 表示星期日）")
		}
		if seen[day] {
			return fmt.Errorf("适用星期中存在重复项")
		}
		seen[day] = true
	}

	return nil
}

// MatchTimePattern 和 MatchDatePattern 暴露给 handler 层校验查询参数。
func MatchTimePattern(s string) bool {
	return timePattern.MatchString(s)
}

func MatchDatePattern(s string) bool {
	return datePattern.MatchString(s)
}
