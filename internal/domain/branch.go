package domain

import "time"

// Branch 表示一家分店。Timezone 是该分店所在地的 IANA 时区名。
type Branch struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
