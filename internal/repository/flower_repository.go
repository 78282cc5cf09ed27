package repository

import (
	"errors"
	"strings"

	"github.com/bloomery-shop/internal/models"

	"gorm.io/gorm"
)

// FlowerRepository 花卉数据访问接口
type FlowerRepository interface {
	Create(flower *models.Flower) error
	GetByID(id uint) (*models.Flower, error)
	GetActiveByID(id uint) (*models.Flower, error)
	List(filter FlowerListFilter) ([]models.Flower, int64, error)
	ListFeatured(limit int) ([]models.Flower, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	DecrementStock(id uint, quantity int) (int64, error)
	WithTx(tx *gorm.DB) *GormFlowerRepository
}

// GormFlowerRepository GORM 实现
type GormFlowerRepository struct {
	db *gorm.DB
}

// NewFlowerRepository 创建花卉仓库
func NewFlowerRepository(db *gorm.DB) *GormFlowerRepository {
	return &GormFlowerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormFlowerRepository) WithTx(tx *gorm.DB) *GormFlowerRepository {
	if tx == nil {
		return r
	}
	return &GormFlowerRepository{db: tx}
}

// Create 创建花卉
func (r *GormFlowerRepository) Create(flower *models.Flower) error {
	return r.db.Create(flower).Error
}

// GetByID 根据 ID 获取花卉
func (r *GormFlowerRepository) GetByID(id uint) (*models.Flower, error) {
	var flower models.Flower
	if err := r.db.First(&flower, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flower, nil
}

// GetActiveByID 根据 ID 获取上架中的花卉
func (r *GormFlowerRepository) GetActiveByID(id uint) (*models.Flower, error) {
	var flower models.Flower
	if err := r.db.Where("is_active = ?", true).First(&flower, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flower, nil
}

// List 分页查询花卉列表
func (r *GormFlowerRepository) List(filter FlowerListFilter) ([]models.Flower, int64, error) {
	query := r.db.Model(&models.Flower{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.InStock {
		query = query.Where("stock > 0")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var flowers []models.Flower
	query = applyPagination(query.Order("created_at desc"), filter.Page, filter.PageSize)
	if err := query.Find(&flowers).Error; err != nil {
		return nil, 0, err
	}
	return flowers, total, nil
}

// ListFeatured 查询精选花卉，按上架时间倒序
func (r *GormFlowerRepository) ListFeatured(limit int) ([]models.Flower, error) {
	query := r.db.Model(&models.Flower{}).
		Where("is_featured = ? AND is_active = ?", true, true).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var flowers []models.Flower
	if err := query.Find(&flowers).Error; err != nil {
		return nil, err
	}
	return flowers, nil
}

// Update 更新花卉字段
func (r *GormFlowerRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Flower{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 软删除花卉
func (r *GormFlowerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Flower{}, id).Error
}

// DecrementStock 条件扣减库存，返回受影响行数（0 表示库存不足）
func (r *GormFlowerRepository) DecrementStock(id uint, quantity int) (int64, error) {
	result := r.db.Model(&models.Flower{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	return result.RowsAffected, result.Error
}
