package resolver

import (
	"time"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
)

// NoActiveSchedule 是历史遗留的提示语常量。
// 没有任何时段生效属于正常结果而不是错误，解析器不会主动抛出这条消息。
const NoActiveSchedule = "当前没有生效的菜单时段"

// Options 描述一次菜单解析的时间基准。
// Time 和 Date 是调用方显式指定的覆盖值，优先于 Now；
// 为空时按每条规则自己的时区把 Now 投影成当地时间再比较。
type Options struct {
	Now        time.Time
	Time       string              // HH:MM，可为空
	Date       string              // YYYY-MM-DD，可为空
	TypeFilter domain.ScheduleType // 为空表示不过滤类型
}

// Group 表示一个生效时段及其下挂的产品项，分组视图不跨时段去重。
type Group struct {
	Schedule *domain.Schedule
	Items    []*domain.ScheduleItem
}
