package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                         // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                                // 用户ID
	AddressID       uint           `gorm:"index;not null" json:"address_id"`                             // 收货地址ID
	Status          string         `gorm:"type:varchar(20);index;not null" json:"status"`                // 订单状态（processing/shipped/delivered/cancelled）
	PaymentMethod   string         `gorm:"type:varchar(30);not null" json:"payment_method"`              // 支付方式
	PaymentStatus   string         `gorm:"type:varchar(20);index;not null" json:"payment_status"`        // 支付状态（pending/completed/failed）
	Subtotal        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // 商品小计
	ShippingFee     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`    // 运费
	Tax             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`             // 税费
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 实付金额
	CartFingerprint string         `gorm:"type:varchar(64);index" json:"-"`                              // 购物车内容指纹（重复下单检测）
	Notes           string         `gorm:"type:text" json:"notes"`                                       // 订单备注
	DeliveredAt     *time.Time     `gorm:"index" json:"delivered_at"`                                    // 送达时间
	CanceledAt      *time.Time     `gorm:"index" json:"canceled_at"`                                     // 取消时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	// 关联
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`    // 订单项
	Address *Address    `gorm:"foreignKey:AddressID" json:"address,omitempty"` // 收货地址
	User    *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`       // 下单用户
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
