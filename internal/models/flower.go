package models

import (
	"time"

	"gorm.io/gorm"
)

// Flower 花卉商品表
type Flower struct {
	ID          uint           `gorm:"primarykey" json:"id"`                             // 主键
	Name        string         `gorm:"not null;index" json:"name"`                       // 商品名称
	Description string         `gorm:"type:text" json:"description"`                     // 商品描述
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	Category    string         `gorm:"type:varchar(20);not null;index" json:"category"`  // 分类（roses/sunflowers/lilies/tulips/orchids/mixed）
	Stock       int            `gorm:"not null;default:0" json:"stock"`                  // 库存数量
	ImageURL    string         `gorm:"type:varchar(500)" json:"image_url"`               // 图片地址
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`              // 是否上架
	IsFeatured  bool           `gorm:"default:false;index" json:"is_featured"`           // 是否精选推荐
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                       // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                   // 软删除时间
}

// TableName 指定表名
func (Flower) TableName() string {
	return "flowers"
}
