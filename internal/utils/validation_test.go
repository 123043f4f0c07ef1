package utils

import (
	"testing"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTimeSlot() *domain.Schedule {
	return &domain.Schedule{
		Name:       "早餐时段",
		Type:       domain.ScheduleTypeTimeSlot,
		StartTime:  "06:00",
		EndTime:    "10:30",
		DaysOfWeek: domain.DaysOfWeek{1, 2, 3, 4, 5},
		Timezone:   "Asia/Shanghai",
	}
}

func validSeasonal() *domain.Schedule {
	return &domain.Schedule{
		Name:      "夏季冷饮",
		Type:      domain.ScheduleTypeSeasonal,
		StartDate: "2026-06-01",
		EndDate:   "2026-08-31",
		Timezone:  "UTC",
	}
}

func TestValidateScheduleInput(t *testing.T) {
	t.Run("合法的固定时段", func(t *testing.T) {
		require.NoError(t, ValidateScheduleInput(validTimeSlot()))
	})

	t.Run("合法的跨午夜时段", func(t *testing.T) {
		s := validTimeSlot()
		s.StartTime = "22:00"
		s.EndTime = "02:00"
		require.NoError(t, ValidateScheduleInput(s))
	})

	t.Run("固定时段缺少时间", func(t *testing.T) {
		s := validTimeSlot()
		s.EndTime = ""
		assert.Error(t, ValidateScheduleInput(s))
	})

	t.Run("固定时段开始结束相同", func(t *testing.T) {
		s := validTimeSlot()
		s.StartTime = "06:00"
		s.EndTime = "06:00"
		assert.Error(t, ValidateScheduleInput(s))
	})

	t.Run("固定时段格式错误", func(t *testing.T) {
		s := validTimeSlot()
		s.StartTime = "25:00"
		assert.Error(t, ValidateScheduleInput(s))
	})

	t.Run("固定时段必须至少指定一个星期", func(t *testing.T) {
		s := validTimeSlot()
		s.DaysOfWeek = domain.DaysOfWeek{}
		assert.Error(t, ValidateScheduleInput(s))
	})

	t.Run("星期超出范围", func(t *testing.T) {
		s := validTimeSlot()
		s.DaysOfWeek = domain.DaysOfWeek{7}
		assert.Error(t, ValidateScheduleInput(s))
	})

	t.Run("星期重复", func(t *testing.T) {
		s := validTimeSlot()
		s.DaysOfWeek = domain.DaysOfWeek{1, 1}
		assert.Error(t, ValidateScheduleInput(s))
	})

	t.Run("合法的季节时段", func(t *testing.T) {
		require.NoError(t, ValidateScheduleInput(validSeasonal()))
	})

	t.Run("季节时段日期必须严格递增", func(t *testing.T) {
		s := validSeasonal()
		s.EndDate = s.StartDate
		assert.Error(t, ValidateScheduleInput(s))
	})

	t.Run("季节时段缺少日期", func(t *testing.T) {
		s := validSeasonal()
		s.StartDate = ""
		assert.Error(t, ValidateScheduleInput(s))
	})

	t.Run("未知类型", func(t *testing.T) {
		s := validTimeSlot()
		s.Type = "HAPPY_HOUR"
		assert.Error(t, ValidateScheduleInput(s))
	})

	t.Run("非法时区重置为UTC", func(t *testing.T) {
		s := validTimeSlot()
		s.Timezone = "Mars/Olympus"
		require.NoError(t, ValidateScheduleInput(s))
		assert.Equal(t, "UTC", s.Timezone)
	})

	t.Run("缺失时区重置为UTC", func(t *testing.T) {
		s := validSeasonal()
		s.Timezone = ""
		require.NoError(t, ValidateScheduleInput(s))
		assert.Equal(t, "UTC", s.Timezone)
	})
}

func TestValidateScheduleUpdate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("空更新合法", func(t *testing.T) {
		require.NoError(t, ValidateScheduleUpdate(&ScheduleUpdate{}))
	})

	t.Run("只改一半时间按原样接受", func(t *testing.T) {
		require.NoError(t, ValidateScheduleUpdate(&ScheduleUpdate{StartTime: strPtr("08:00")}))
		require.NoError(t, ValidateScheduleUpdate(&ScheduleUpdate{EndDate: strPtr("2026-12-31")}))
	})

	t.Run("两端同时出现时做交叉校验", func(t *testing.T) {
		assert.Error(t, ValidateScheduleUpdate(&ScheduleUpdate{
			StartTime: strPtr("08:00"),
			EndTime:   strPtr("08:00"),
		}))
		assert.Error(t, ValidateScheduleUpdate(&ScheduleUpdate{
			StartDate: strPtr("2026-08-31"),
			EndDate:   strPtr("2026-06-01"),
		}))
		require.NoError(t, ValidateScheduleUpdate(&ScheduleUpdate{
			StartTime: strPtr("22:00"),
			EndTime:   strPtr("02:00"),
		}))
	})

	t.Run("格式错误", func(t *testing.T) {
		assert.Error(t, ValidateScheduleUpdate(&ScheduleUpdate{StartTime: strPtr("25:00")}))
		assert.Error(t, ValidateScheduleUpdate(&ScheduleUpdate{EndDate: strPtr("2026/06/01")}))
	})

	t.Run("更新时允许清空星期", func(t *testing.T) {
		empty := domain.DaysOfWeek{}
		require.NoError(t, ValidateScheduleUpdate(&ScheduleUpdate{DaysOfWeek: &empty}))
	})

	t.Run("更新时非法时区直接报错", func(t *testing.T) {
		assert.Error(t, ValidateScheduleUpdate(&ScheduleUpdate{Timezone: strPtr("Mars/Olympus")}))
	})
}

func TestMatchPatterns(t *testing.T) {
	assert.True(t, MatchTimePattern("09:30"))
	assert.True(t, MatchTimePattern("9:30"))
	assert.False(t, MatchTimePattern("09:30:00"))
	assert.False(t, MatchTimePattern("24:00"))

	assert.True(t, MatchDatePattern("2026-07-01"))
	assert.False(t, MatchDatePattern("2026-7-1"))
	assert.False(t, MatchDatePattern("20260701"))
}
