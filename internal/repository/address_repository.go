package repository

import (
	"errors"

	"github.com/bloomery-shop/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 收货地址数据访问接口
type AddressRepository interface {
	Create(address *models.Address) error
	GetByIDAndUser(id, userID uint) (*models.Address, error)
	ListByUser(userID uint) ([]models.Address, error)
	ListLabelsByUser(userID uint) ([]string, error)
	Update(id, userID uint, updates map[string]interface{}) error
	ClearDefaultByUser(userID uint) error
	DeleteByIDAndUser(id, userID uint) error
	WithTx(tx *gorm.DB) *GormAddressRepository
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAddressRepository) WithTx(tx *gorm.DB) *GormAddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// Create 创建地址
func (r *GormAddressRepository) Create(address *models.Address) error {
	return r.db.Create(address).Error
}

// GetByIDAndUser 获取用户的指定地址
func (r *GormAddressRepository) GetByIDAndUser(id, userID uint) (*models.Address, error) {
	var address models.Address
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// ListByUser 获取用户全部地址（默认地址在前）
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.Where("user_id = ?", userID).
		Order("is_default desc, created_at desc").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// ListLabelsByUser 获取用户已使用的地址标签（去重）
func (r *GormAddressRepository) ListLabelsByUser(userID uint) ([]string, error) {
	var labels []string
	if err := r.db.Model(&models.Address{}).
		Distinct("label").
		Where("user_id = ? AND label <> ''", userID).
		Order("label").
		Pluck("label", &labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// Update 更新用户地址
func (r *GormAddressRepository) Update(id, userID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Address{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates).Error
}

// ClearDefaultByUser 清除用户当前的默认地址标记
func (r *GormAddressRepository) ClearDefaultByUser(userID uint) error {
	return r.db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

// DeleteByIDAndUser 删除用户地址
func (r *GormAddressRepository) DeleteByIDAndUser(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{}).Error
}
