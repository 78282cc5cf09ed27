package service

import (
	"strings"

	"github.com/bloomery-shop/internal/models"
	"github.com/bloomery-shop/internal/repository"
)

// AddressInput 地址创建/更新输入
type AddressInput struct {
	Street     string
	City       string
	Commune    string
	Province   string
	PostalCode string
	Country    string
	Label      string
	IsDefault  bool
}

// AddressService 收货地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// ListByUser 获取用户地址列表
func (s *AddressService) ListByUser(userID uint) ([]models.Address, error) {
	if userID == 0 {
		return nil, ErrInvalidParams
	}
	return s.addressRepo.ListByUser(userID)
}

// ListLabels 获取用户已使用的地址标签
func (s *AddressService) ListLabels(userID uint) ([]string, error) {
	if userID == 0 {
		return nil, ErrInvalidParams
	}
	return s.addressRepo.ListLabelsByUser(userID)
}

// GetByID 获取用户指定地址
func (s *AddressService) GetByID(id, userID uint) (*models.Address, error) {
	if id == 0 || userID == 0 {
		return nil, ErrInvalidParams
	}
	address, err := s.addressRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

// Create 创建地址
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	street := strings.TrimSpace(input.Street)
	city := strings.TrimSpace(input.City)
	if userID == 0 || street == "" || city == "" {
		return nil, ErrInvalidParams
	}
	country := strings.TrimSpace(input.Country)
	if country == "" {
		country = "Cambodia"
	}

	if input.IsDefault {
		if err := s.addressRepo.ClearDefaultByUser(userID); err != nil {
			return nil, err
		}
	}
	address := &models.Address{
		UserID:     userID,
		Street:     street,
		City:       city,
		Commune:    strings.TrimSpace(input.Commune),
		Province:   strings.TrimSpace(input.Province),
		PostalCode: strings.TrimSpace(input.PostalCode),
		Country:    country,
		Label:      strings.TrimSpace(input.Label),
		IsDefault:  input.IsDefault,
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Update 更新地址
func (s *AddressService) Update(id, userID uint, input AddressInput) (*models.Address, error) {
	address, err := s.GetByID(id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if street := strings.TrimSpace(input.Street); street != "" {
		updates["street"] = street
	}
	if city := strings.TrimSpace(input.City); city != "" {
		updates["city"] = city
	}
	if input.Commune != "" {
		updates["commune"] = strings.TrimSpace(input.Commune)
	}
	if input.Province != "" {
		updates["province"] = strings.TrimSpace(input.Province)
	}
	if input.PostalCode != "" {
		updates["postal_code"] = strings.TrimSpace(input.PostalCode)
	}
	if country := strings.TrimSpace(input.Country); country != "" {
		updates["country"] = country
	}
	if input.Label != "" {
		updates["label"] = strings.TrimSpace(input.Label)
	}
	if input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.ClearDefaultByUser(userID); err != nil {
			return nil, err
		}
		updates["is_default"] = true
	}

	if err := s.addressRepo.Update(address.ID, userID, updates); err != nil {
		return nil, err
	}
	return s.GetByID(id, userID)
}

// Delete 删除地址
func (s *AddressService) Delete(id, userID uint) error {
	address, err := s.GetByID(id, userID)
	if err != nil {
		return err
	}
	return s.addressRepo.DeleteByIDAndUser(address.ID, userID)
}
