package repository

import (
	"errors"

	"github.com/bloomery-shop/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	GetByUserAndFlower(userID, flowerID uint) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(id uint, quantity int) error
	CountByUser(userID uint) (int64, error)
	DeleteByUserAndFlower(userID, flowerID uint) error
	ClearByUser(userID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车项
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Flower").Where("user_id = ?", userID).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByUserAndFlower 获取用户购物车中指定商品的项
func (r *GormCartRepository) GetByUserAndFlower(userID, flowerID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND flower_id = ?", userID, flowerID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create 新增购物车项
func (r *GormCartRepository) Create(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	return r.db.Create(item).Error
}

// UpdateQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateQuantity(id uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity).Error
}

// CountByUser 统计用户购物车商品总数量
func (r *GormCartRepository) CountByUser(userID uint) (int64, error) {
	var count *int64
	if err := r.db.Model(&models.CartItem{}).
		Select("SUM(quantity)").
		Where("user_id = ?", userID).
		Scan(&count).Error; err != nil {
		return 0, err
	}
	if count == nil {
		return 0, nil
	}
	return *count, nil
}

// DeleteByUserAndFlower 删除购物车项
func (r *GormCartRepository) DeleteByUserAndFlower(userID, flowerID uint) error {
	return r.db.Where("user_id = ? AND flower_id = ?", userID, flowerID).Delete(&models.CartItem{}).Error
}

// ClearByUser 清空购物车
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
