package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTime 解析 HH:MM（允许 H:MM）格式的时间。
// 解析失败时 ok 为 false，调用方需要自行判断。
func ParseTime(s string) (hour int, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) == 0 || len(parts[0]) > 2 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, 0, false
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}

	return hour, minute, true
}

// ParseClockParam 解析查询参数中的时间，允许带秒（HH:MM:SS），秒会被丢弃。
// 返回规整后的 HH:MM。
func ParseClockParam(s string) (string, bool) {
	parts := strings.Split(s, ":")
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || len(parts[2]) != 2 || sec < 0 || sec > 59 {
			return "", false
		}
		s = parts[0] + ":" + parts[1]
	}

	hour, minute, ok := ParseTime(s)
	if !ok {
		return "", false
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// CompareTime 比较两个 HH:MM 时间，返回 -1、0、1。
// 非法输入一律当作 00:00 处理，调用方应当事先校验。
func CompareTime(a, b string) int {
	ah, am, _ := ParseTime(a)
	bh, bm, _ := ParseTime(b)

	aMinutes := ah*60 + am
	bMinutes := bh*60 + bm

	switch {
	case aMinutes < bMinutes:
		return -1
	case aMinutes > bMinutes:
		return 1
	default:
		return 0
	}
}

// IsTimeInRange 判断 current 是否落在 [start, end] 内，两端都是闭区间。
// 当 end 早于 start 时表示窗口跨越午夜（如 22:00-02:00），
// 此时只要 current >= start 或 current <= end 即视为在窗口内。
func IsTimeInRange(current, start, end string) bool {
	if CompareTime(end, start) < 0 {
		return CompareTime(current, start) >= 0 || CompareTime(current, end) <= 0
	}

	return CompareTime(current, start) >= 0 && CompareTime(current, end) <= 0
}

// IsDateInRange 判断日期是否落在 [start, end] 内，两端闭区间。
// YYYY-MM-DD 是定宽零填充格式，直接按字符串比较即可。
func IsDateInRange(current, start, end string) bool {
	return current >= start && current <= end
}

// ValidateTimeRange 校验时间窗口：两端都必须存在且不能相等。
// 不检查先后顺序，结束早于开始是合法的跨午夜窗口。
func ValidateTimeRange(start, end string) bool {
	if start == "" || end == "" {
		return false
	}

	return CompareTime(start, end) != 0
}

// ValidateDateRange 校验日期区间：结束日期必须严格晚于开始日期。
func ValidateDateRange(start, end string) bool {
	if start == "" || end == "" {
		return false
	}

	return end > start
}

func IsValidTimezone(name string) bool {
	if name == "" {
		return false
	}

	_, err := time.LoadLocation(name)
	return err == nil
}

// LocationFor 加载时区，非法时区名会返回错误。
// 这是对外的安全入口，与内部过滤时使用的 CurrentTimeIn 不同。
func LocationFor(name string) (*time.Location, error) {
	if name == "" {
		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("无效的时区: %s", name)
	}

	return loc, nil
}

// CurrentTimeIn 将 now 投影到指定时区。
// 过滤时段时每条规则都可能带不同的时区，这里对未知时区做降级处理：
// 空串按 UTC 处理，无法加载的时区名保持系统本地时间。
func CurrentTimeIn(name string, now time.Time) time.Time {
	if name == "" {
		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return now
	}

	return now.In(loc)
}

// DayOfWeek 返回日期对应的星期，0 表示星期日。
func DayOfWeek(date string) (int32, bool) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, false
	}

	return int32(d.Weekday()), true
}

// FormatClock 将时间格式化为 HH:MM。
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatDate 将时间格式化为 YYYY-MM-DD。
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
