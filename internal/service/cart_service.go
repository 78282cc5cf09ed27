package service

import (
	"context"

	"github.com/bloomery-shop/internal/cache"
	"github.com/bloomery-shop/internal/models"
	"github.com/bloomery-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	FlowerID  uint           `json:"flower_id"`
	Quantity  int            `json:"quantity"`
	UnitPrice models.Money   `json:"unit_price"`
	LineTotal models.Money   `json:"line_total"`
	Flower    *models.Flower `json:"flower"`
}

// AddCartItemInput 购物车添加输入
type AddCartItemInput struct {
	UserID   uint
	FlowerID uint
	Quantity int
}

// CartService 购物车服务
type CartService struct {
	cartRepo   repository.CartRepository
	flowerRepo repository.FlowerRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, flowerRepo repository.FlowerRepository) *CartService {
	return &CartService{
		cartRepo:   cartRepo,
		flowerRepo: flowerRepo,
	}
}

// ListByUser 获取用户购物车
func (s *CartService) ListByUser(userID uint) ([]CartItemDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidParams
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		flower := item.Flower
		if flower == nil || flower.ID == 0 {
			f, err := s.flowerRepo.GetByID(item.FlowerID)
			if err != nil {
				return nil, err
			}
			flower = f
		}
		// 已下架商品直接移出购物车
		if flower == nil || !flower.IsActive {
			_ = s.cartRepo.DeleteByUserAndFlower(userID, item.FlowerID)
			continue
		}

		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		details = append(details, CartItemDetail{
			FlowerID:  item.FlowerID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
			Flower:    flower,
		})
	}
	return details, nil
}

// AddItem 添加商品到购物车（已存在则合并数量）
func (s *CartService) AddItem(input AddCartItemInput) error {
	if input.UserID == 0 || input.FlowerID == 0 {
		return ErrInvalidParams
	}
	if input.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	flower, err := s.flowerRepo.GetByID(input.FlowerID)
	if err != nil {
		return err
	}
	if flower == nil || !flower.IsActive {
		return ErrFlowerNotAvailable
	}

	existing, err := s.cartRepo.GetByUserAndFlower(input.UserID, input.FlowerID)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := s.cartRepo.UpdateQuantity(existing.ID, existing.Quantity+input.Quantity); err != nil {
			return err
		}
	} else {
		item := &models.CartItem{
			UserID:    input.UserID,
			FlowerID:  input.FlowerID,
			Quantity:  input.Quantity,
			UnitPrice: flower.Price,
		}
		if err := s.cartRepo.Create(item); err != nil {
			return err
		}
	}
	cache.InvalidateCartCount(context.Background(), input.UserID)
	return nil
}

// UpdateItemQuantity 直接设置购物车项数量
func (s *CartService) UpdateItemQuantity(userID, flowerID uint, quantity int) error {
	if userID == 0 || flowerID == 0 {
		return ErrInvalidParams
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	existing, err := s.cartRepo.GetByUserAndFlower(userID, flowerID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}
	if err := s.cartRepo.UpdateQuantity(existing.ID, quantity); err != nil {
		return err
	}
	cache.InvalidateCartCount(context.Background(), userID)
	return nil
}

// RemoveItem 从购物车移除商品
func (s *CartService) RemoveItem(userID, flowerID uint) error {
	if userID == 0 || flowerID == 0 {
		return ErrInvalidParams
	}
	existing, err := s.cartRepo.GetByUserAndFlower(userID, flowerID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}
	if err := s.cartRepo.DeleteByUserAndFlower(userID, flowerID); err != nil {
		return err
	}
	cache.InvalidateCartCount(context.Background(), userID)
	return nil
}

// Count 统计购物车商品总数量（优先读缓存）
func (s *CartService) Count(userID uint) (int64, error) {
	if userID == 0 {
		return 0, ErrInvalidParams
	}
	ctx := context.Background()
	if snapshot, ok := cache.GetCartCount(ctx, userID); ok {
		return snapshot.Count, nil
	}
	count, err := s.cartRepo.CountByUser(userID)
	if err != nil {
		return 0, err
	}
	cache.SetCartCount(ctx, userID, count)
	return count, nil
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidParams
	}
	if err := s.cartRepo.ClearByUser(userID); err != nil {
		return err
	}
	cache.InvalidateCartCount(context.Background(), userID)
	return nil
}
