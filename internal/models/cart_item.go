package models

import (
	"time"
)

// CartItem 购物车项。物理删除：结算或移除后必须立刻可以重新加购，
// 软删除的残留行会继续占用 (user_id, flower_id) 唯一索引。
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                       // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_flower" json:"user_id"`   // 用户ID
	FlowerID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_flower" json:"flower_id"` // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                   // 数量
	UnitPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`    // 加入购物车时的单价快照
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                    // 更新时间

	Flower *Flower `gorm:"foreignKey:FlowerID" json:"flower,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
