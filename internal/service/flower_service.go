package service

import (
	"strings"

	"github.com/bloomery-shop/internal/constants"
	"github.com/bloomery-shop/internal/models"
	"github.com/bloomery-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// FlowerListInput 花卉列表查询输入
type FlowerListInput struct {
	Page       int
	PageSize   int
	Category   string
	Search     string
	OnlyActive bool
	InStock    bool
}

// FlowerUpsertInput 花卉创建/更新输入
type FlowerUpsertInput struct {
	Name        string
	Description string
	Price       models.Money
	Category    string
	Stock       int
	ImageURL    string
	IsActive    *bool
	IsFeatured  *bool
}

const defaultFeaturedLimit = 6

// FlowerService 花卉商品服务
type FlowerService struct {
	flowerRepo repository.FlowerRepository
}

// NewFlowerService 创建花卉服务
func NewFlowerService(flowerRepo repository.FlowerRepository) *FlowerService {
	return &FlowerService{flowerRepo: flowerRepo}
}

// List 查询花卉列表
func (s *FlowerService) List(input FlowerListInput) ([]models.Flower, int64, error) {
	category := strings.TrimSpace(input.Category)
	if category != "" && !constants.IsValidFlowerCategory(category) {
		return nil, 0, ErrFlowerInvalidCategory
	}
	filter := repository.FlowerListFilter{
		Page:       input.Page,
		PageSize:   input.PageSize,
		Category:   category,
		Search:     strings.TrimSpace(input.Search),
		OnlyActive: input.OnlyActive,
		InStock:    input.InStock,
	}
	return s.flowerRepo.List(filter)
}

// ListFeatured 查询精选花卉，limit 非法时取默认值
func (s *FlowerService) ListFeatured(limit int) ([]models.Flower, error) {
	if limit <= 0 || limit > 50 {
		limit = defaultFeaturedLimit
	}
	return s.flowerRepo.ListFeatured(limit)
}

// GetByID 查询花卉详情
func (s *FlowerService) GetByID(id uint) (*models.Flower, error) {
	if id == 0 {
		return nil, ErrInvalidParams
	}
	flower, err := s.flowerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if flower == nil {
		return nil, ErrFlowerNotFound
	}
	return flower, nil
}

// GetActiveByID 查询上架中的花卉详情
func (s *FlowerService) GetActiveByID(id uint) (*models.Flower, error) {
	if id == 0 {
		return nil, ErrInvalidParams
	}
	flower, err := s.flowerRepo.GetActiveByID(id)
	if err != nil {
		return nil, err
	}
	if flower == nil {
		return nil, ErrFlowerNotFound
	}
	return flower, nil
}

// Create 创建花卉
func (s *FlowerService) Create(input FlowerUpsertInput) (*models.Flower, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	if name == "" {
		return nil, ErrInvalidParams
	}
	if !constants.IsValidFlowerCategory(category) {
		return nil, ErrFlowerInvalidCategory
	}
	if input.Price.LessThan(decimal.Zero) {
		return nil, ErrFlowerInvalidPrice
	}
	if input.Stock < 0 {
		return nil, ErrInvalidParams
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	flower := &models.Flower{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    category,
		Stock:       input.Stock,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		IsActive:    isActive,
	}
	if input.IsFeatured != nil {
		flower.IsFeatured = *input.IsFeatured
	}
	if err := s.flowerRepo.Create(flower); err != nil {
		return nil, err
	}
	return flower, nil
}

// Update 更新花卉
func (s *FlowerService) Update(id uint, input FlowerUpsertInput) (*models.Flower, error) {
	flower, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(input.Name); name != "" {
		updates["name"] = name
	}
	if input.Description != "" {
		updates["description"] = strings.TrimSpace(input.Description)
	}
	if category := strings.TrimSpace(input.Category); category != "" {
		if !constants.IsValidFlowerCategory(category) {
			return nil, ErrFlowerInvalidCategory
		}
		updates["category"] = category
	}
	if !input.Price.IsZero() {
		if input.Price.LessThan(decimal.Zero) {
			return nil, ErrFlowerInvalidPrice
		}
		updates["price"] = input.Price
	}
	if input.Stock >= 0 {
		updates["stock"] = input.Stock
	}
	if input.ImageURL != "" {
		updates["image_url"] = strings.TrimSpace(input.ImageURL)
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.IsFeatured != nil {
		updates["is_featured"] = *input.IsFeatured
	}

	if err := s.flowerRepo.Update(flower.ID, updates); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// UpdateStock 调整库存
func (s *FlowerService) UpdateStock(id uint, stock int) (*models.Flower, error) {
	if stock < 0 {
		return nil, ErrInvalidParams
	}
	flower, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.flowerRepo.Update(flower.ID, map[string]interface{}{"stock": stock}); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete 下架并删除花卉
func (s *FlowerService) Delete(id uint) error {
	flower, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.flowerRepo.Delete(flower.ID)
}
