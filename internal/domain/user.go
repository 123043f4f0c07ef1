package domain

import (
	"time"
)

type Role string

const (
	RoleHQAdmin       Role = "总部管理员"
	RoleBranchManager Role = "分店经理"
)

// User 的 BranchID 仅对分店经理有意义，总部管理员的 BranchID 为 nil。
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	BranchID     *int64    `json:"branchID"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
