package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input  string
		hour   int
		minute int
		ok     bool
	}{
		{"06:00", 6, 0, true},
		{"6:00", 6, 0, true},
		{"23:59", 23, 59, true},
		{"00:00", 0, 0, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"12:5", 0, 0, false},
		{"12", 0, 0, false},
		{"12:00:00", 0, 0, false},
		{"", 0, 0, false},
		{"ab:cd", 0, 0, false},
	}

	for _, tt := range tests {
		hour, minute, ok := ParseTime(tt.input)
		assert.Equal(t, tt.ok, ok, "input: %s", tt.input)
		if tt.ok {
			assert.Equal(t, tt.hour, hour, "input: %s", tt.input)
			assert.Equal(t, tt.minute, minute, "input: %s", tt.input)
		}
	}
}

func TestParseClockParam(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"06:00", "06:00", true},
		{"6:00", "06:00", true},
		{"14:30:45", "14:30", true},
		{"14:30:60", "", false},
		{"14:30:5", "", false},
		{"25:00", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseClockParam(tt.input)
		assert.Equal(t, tt.ok, ok, "input: %s", tt.input)
		assert.Equal(t, tt.expected, got, "input: %s", tt.input)
	}
}

func TestIsTimeInRange(t *testing.T) {
	t.Run("普通时段两端都是闭区间", func(t *testing.T) {
		assert.True(t, IsTimeInRange("06:00", "06:00", "11:00"))
		assert.True(t, IsTimeInRange("11:00", "06:00", "11:00"))
		assert.True(t, IsTimeInRange("07:30", "06:00", "11:00"))
		assert.False(t, IsTimeInRange("05:59", "06:00", "11:00"))
		assert.False(t, IsTimeInRange("11:01", "06:00", "11:00"))
		assert.False(t, IsTimeInRange("12:00", "06:00", "11:00"))
	})

	t.Run("跨午夜时段", func(t *testing.T) {
		// 22:00-02:00 覆盖深夜和凌晨两段
		assert.True(t, IsTimeInRange("22:00", "22:00", "02:00"))
		assert.True(t, IsTimeInRange("23:00", "22:00", "02:00"))
		assert.True(t, IsTimeInRange("00:30", "22:00", "02:00"))
		assert.True(t, IsTimeInRange("02:00", "22:00", "02:00"))
		assert.False(t, IsTimeInRange("02:01", "22:00", "02:00"))
		assert.False(t, IsTimeInRange("21:59", "22:00", "02:00"))
		assert.False(t, IsTimeInRange("12:00", "22:00", "02:00"))
	})
}

func TestIsDateInRange(t *testing.T) {
	assert.True(t, IsDateInRange("2026-06-01", "2026-06-01", "2026-08-31"))
	assert.True(t, IsDateInRange("2026-08-31", "2026-06-01", "2026-08-31"))
	assert.True(t, IsDateInRange("2026-07-15", "2026-06-01", "2026-08-31"))
	assert.False(t, IsDateInRange("2026-05-31", "2026-06-01", "2026-08-31"))
	assert.False(t, IsDateInRange("2026-09-01", "2026-06-01", "2026-08-31"))
}

func TestValidateTimeRange(t *testing.T) {
	assert.True(t, ValidateTimeRange("06:00", "11:00"))
	// 结束早于开始是合法的跨午夜窗口
	assert.True(t, ValidateTimeRange("22:00", "02:00"))
	// 两端相等无法解释为全天或零长度
	assert.False(t, ValidateTimeRange("06:00", "06:00"))
	assert.False(t, ValidateTimeRange("", "11:00"))
	assert.False(t, ValidateTimeRange("06:00", ""))
}

func TestValidateDateRange(t *testing.T) {
	assert.True(t, ValidateDateRange("2026-06-01", "2026-08-31"))
	// 日期区间必须严格递增
	assert.False(t, ValidateDateRange("2026-06-01", "2026-06-01"))
	assert.False(t, ValidateDateRange("2026-08-31", "2026-06-01"))
	assert.False(t, ValidateDateRange("", "2026-08-31"))
}

func TestLocationFor(t *testing.T) {
	loc, err := LocationFor("Asia/Shanghai")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Shanghai", loc.String())

	// 空串默认 UTC
	loc, err = LocationFor("")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = LocationFor("Mars/Olympus")
	assert.Error(t, err)
}

func TestCurrentTimeIn(t *testing.T) {
	now := time.Date(2026, 7, 1, 23, 30, 0, 0, time.UTC)

	// UTC 23:30 在上海是次日 07:30
	shanghai := CurrentTimeIn("Asia/Shanghai", now)
	assert.Equal(t, "07:30", FormatClock(shanghai))
	assert.Equal(t, "2026-07-02", FormatDate(shanghai))

	// 空串按 UTC 处理
	assert.Equal(t, "23:30", FormatClock(CurrentTimeIn("", now)))

	// 未知时区保持原样
	assert.Equal(t, now, CurrentTimeIn("Mars/Olympus", now))
}

func TestDayOfWeek(t *testing.T) {
	// 2026-07-05 是星期日
	day, ok := DayOfWeek("2026-07-05")
	require.True(t, ok)
	assert.Equal(t, int32(0), day)

	day, ok = DayOfWeek("2026-07-06")
	require.True(t, ok)
	assert.Equal(t, int32(1), day)

	_, ok = DayOfWeek("2026-02-30")
	assert.False(t, ok)

	_, ok = DayOfWeek("not-a-date")
	assert.False(t, ok)
}
