package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货地址表
type Address struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                        // 主键
	UserID     uint           `gorm:"index;not null" json:"user_id"`                               // 用户ID
	Street     string         `gorm:"not null" json:"street"`                                      // 街道
	City       string         `gorm:"not null" json:"city"`                                        // 城市
	Commune    string         `gorm:"default:''" json:"commune"`                                   // 区/乡
	Province   string         `gorm:"default:''" json:"province"`                                  // 省
	PostalCode string         `gorm:"type:varchar(20);default:''" json:"postal_code"`              // 邮编
	Country    string         `gorm:"type:varchar(50);not null;default:'Cambodia'" json:"country"` // 国家
	Label      string         `gorm:"type:varchar(50);default:''" json:"label"`                    // 地址标签（home/work 等）
	IsDefault  bool           `gorm:"default:false" json:"is_default"`                             // 是否默认地址
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
