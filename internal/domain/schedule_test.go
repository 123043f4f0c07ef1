package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeDaysOfWeek(t *testing.T) {
	fallback := DaysOfWeek{}

	assert.Equal(t, DaysOfWeek{1, 2, 3}, DecodeDaysOfWeek("[1,2,3]", fallback))
	assert.Equal(t, DaysOfWeek{0}, DecodeDaysOfWeek("[0]", fallback))

	// 旧数据中的空串和非法 JSON 都按默认值处理
	assert.Equal(t, fallback, DecodeDaysOfWeek("", fallback))
	assert.Equal(t, fallback, DecodeDaysOfWeek("not json", fallback))
	assert.Equal(t, fallback, DecodeDaysOfWeek("{\"a\":1}", fallback))

	custom := DaysOfWeek{0, 6}
	assert.Equal(t, custom, DecodeDaysOfWeek("", custom))
}

func TestDaysOfWeekEncode(t *testing.T) {
	assert.Equal(t, "[1,2,3]", DaysOfWeek{1, 2, 3}.Encode())
	assert.Equal(t, "[]", DaysOfWeek{}.Encode())
	assert.Equal(t, "[]", DaysOfWeek(nil).Encode())

	// 编码解码往返
	original := DaysOfWeek{0, 3, 6}
	assert.Equal(t, original, DecodeDaysOfWeek(original.Encode(), nil))
}

func TestDaysOfWeekContains(t *testing.T) {
	days := DaysOfWeek{1, 3, 5}
	assert.True(t, days.Contains(1))
	assert.True(t, days.Contains(5))
	assert.False(t, days.Contains(0))
	assert.False(t, days.Contains(6))
	assert.False(t, DaysOfWeek{}.Contains(0))
}
