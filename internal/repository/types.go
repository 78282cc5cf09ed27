package repository

import "time"

// FlowerListFilter 查询花卉列表的过滤条件
type FlowerListFilter struct {
	Page       int
	PageSize   int
	Category   string
	Search     string
	OnlyActive bool
	InStock    bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page             int
	PageSize         int
	UserID           uint
	Status           string
	PaymentStatus    string
	OrderNo          string
	ExcludeCancelled bool
	CreatedFrom      *time.Time
	CreatedTo        *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Role     string
	Search   string
}
