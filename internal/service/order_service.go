package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/bloomery-shop/internal/cache"
	"github.com/bloomery-shop/internal/config"
	"github.com/bloomery-shop/internal/constants"
	"github.com/bloomery-shop/internal/logger"
	"github.com/bloomery-shop/internal/models"
	"github.com/bloomery-shop/internal/queue"
	"github.com/bloomery-shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutInput 结算输入
type CheckoutInput struct {
	UserID        uint
	AddressID     uint
	PaymentMethod string
	Notes         string
	ClientTotal   *models.Money // 客户端展示的总价，仅用于对账日志
}

// OrderService 订单服务
type OrderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	flowerRepo  repository.FlowerRepository
	addressRepo repository.AddressRepository
	queueClient *queue.Client
	checkoutCfg config.CheckoutConfig
}

// NewOrderService 创建订单服务
func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	flowerRepo repository.FlowerRepository,
	addressRepo repository.AddressRepository,
	queueClient *queue.Client,
	checkoutCfg config.CheckoutConfig,
) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		flowerRepo:  flowerRepo,
		addressRepo: addressRepo,
		queueClient: queueClient,
		checkoutCfg: checkoutCfg,
	}
}

// Checkout 将用户购物车结算为订单
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 || input.AddressID == 0 {
		return nil, ErrInvalidParams
	}

	paymentMethod := strings.TrimSpace(input.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = constants.PaymentMethodQRCode
	}
	if !constants.IsValidPaymentMethod(paymentMethod) {
		return nil, ErrPaymentMethodInvalid
	}

	address, err := s.addressRepo.GetByIDAndUser(input.AddressID, input.UserID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	cartItems, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	// 金额一律以服务端购物车快照重新计算，不信任客户端传入的小计
	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		if item.FlowerID == 0 || item.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		flower := item.Flower
		if flower == nil || flower.ID == 0 {
			f, err := s.flowerRepo.GetByID(item.FlowerID)
			if err != nil {
				return nil, err
			}
			flower = f
		}
		if flower == nil || !flower.IsActive {
			return nil, ErrFlowerNotAvailable
		}

		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		orderItems = append(orderItems, models.OrderItem{
			FlowerID:   item.FlowerID,
			FlowerName: flower.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			TotalPrice: models.NewMoneyFromDecimal(lineTotal),
		})
	}

	shippingFee := s.resolveShippingFee()
	taxRate := s.resolveTaxRate()
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(shippingFee).Add(tax)
	if input.ClientTotal != nil && !input.ClientTotal.Round(2).Equal(total.Round(2)) {
		logger.Warnw("order_checkout_client_total_mismatch",
			"user_id", input.UserID,
			"client_total", input.ClientTotal.String(),
			"server_total", total.StringFixed(2),
		)
	}

	fingerprint := buildCartFingerprint(input.UserID, input.AddressID, cartItems)
	now := time.Now()
	order := &models.Order{
		OrderNo:         generateOrderNo(),
		UserID:          input.UserID,
		AddressID:       address.ID,
		Status:          constants.OrderStatusProcessing,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   constants.PaymentStatusPending,
		Subtotal:        models.NewMoneyFromDecimal(subtotal),
		ShippingFee:     models.NewMoneyFromDecimal(shippingFee),
		Tax:             models.NewMoneyFromDecimal(tax),
		TotalAmount:     models.NewMoneyFromDecimal(total),
		CartFingerprint: fingerprint,
		Notes:           strings.TrimSpace(input.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		flowerRepo := s.flowerRepo.WithTx(tx)

		// 同一用户短时间内提交内容完全相同的购物车视为重复下单
		window := s.resolveDuplicateWindow()
		if window > 0 {
			duplicate, err := orderRepo.FindRecentByFingerprint(input.UserID, fingerprint, now.Add(-window))
			if err != nil {
				return err
			}
			if duplicate != nil {
				return ErrDuplicateCheckout
			}
		}

		for _, item := range orderItems {
			affected, err := flowerRepo.DecrementStock(item.FlowerID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrFlowerOutOfStock
			}
		}

		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}
		return cartRepo.ClearByUser(input.UserID)
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateCartCount(context.Background(), input.UserID)
	if s.queueClient != nil {
		if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
			OrderID: order.ID,
			Status:  order.Status,
		}); err != nil {
			logger.Warnw("order_enqueue_status_email_failed",
				"order_id", order.ID,
				"status", order.Status,
				"error", err,
			)
		}
	}

	order.Items = orderItems
	order.Address = address
	return order, nil
}

// GetByIDAndUser 获取用户订单详情
func (s *OrderService) GetByIDAndUser(orderID, userID uint) (*models.Order, error) {
	if orderID == 0 || userID == 0 {
		return nil, ErrInvalidParams
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser 分页查询用户订单（不含已取消订单）
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidParams
	}
	filter := repository.OrderListFilter{
		Page:             page,
		PageSize:         pageSize,
		UserID:           userID,
		ExcludeCancelled: true,
	}
	return s.orderRepo.ListByUser(filter)
}

// RecentByUser 获取用户最近订单
func (s *OrderService) RecentByUser(userID uint, limit int) ([]models.Order, error) {
	if userID == 0 {
		return nil, ErrInvalidParams
	}
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	return s.orderRepo.RecentByUser(userID, limit)
}

// AdminGetByID 管理端获取订单详情
func (s *OrderService) AdminGetByID(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrInvalidParams
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// AdminList 管理端分页查询订单
func (s *OrderService) AdminList(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// AdminListItems 管理端获取订单项
func (s *OrderService) AdminListItems(orderID uint) ([]models.OrderItem, error) {
	order, err := s.AdminGetByID(orderID)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.ListItems(order.ID)
}

// UpdateStatus 管理端更新订单状态
func (s *OrderService) UpdateStatus(orderID uint, targetStatus string) (*models.Order, error) {
	target := strings.TrimSpace(targetStatus)
	if !constants.IsValidOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.AdminGetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == target {
		return order, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	switch target {
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCancelled:
		updates["canceled_at"] = now
	}
	if err := s.orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
		return nil, ErrOrderUpdateFailed
	}

	if s.queueClient != nil {
		if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
			OrderID: order.ID,
			Status:  target,
		}); err != nil {
			logger.Warnw("order_enqueue_status_email_failed",
				"order_id", order.ID,
				"status", target,
				"error", err,
			)
		}
	}
	return s.AdminGetByID(orderID)
}

// UpdatePaymentStatus 管理端更新支付状态
func (s *OrderService) UpdatePaymentStatus(orderID uint, targetStatus string) (*models.Order, error) {
	target := strings.TrimSpace(targetStatus)
	if !constants.IsValidPaymentStatus(target) {
		return nil, ErrPaymentStatusInvalid
	}
	order, err := s.AdminGetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == target {
		return order, nil
	}

	updates := map[string]interface{}{
		"payment_status": target,
		"updated_at":     time.Now(),
	}
	if err := s.db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		return nil, ErrOrderUpdateFailed
	}
	return s.AdminGetByID(orderID)
}

func (s *OrderService) resolveShippingFee() decimal.Decimal {
	fee, err := decimal.NewFromString(strings.TrimSpace(s.checkoutCfg.ShippingFee))
	if err != nil || fee.LessThan(decimal.Zero) {
		return decimal.RequireFromString("5.99")
	}
	return fee.Round(2)
}

func (s *OrderService) resolveTaxRate() decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(s.checkoutCfg.TaxRate))
	if err != nil || rate.LessThan(decimal.Zero) {
		return decimal.RequireFromString("0.08")
	}
	return rate
}

func (s *OrderService) resolveDuplicateWindow() time.Duration {
	seconds := s.checkoutCfg.DuplicateWindowSeconds
	if seconds < 0 {
		seconds = 0
	}
	return time.Duration(seconds) * time.Second
}

// buildCartFingerprint 生成购物车内容指纹，行序无关
func buildCartFingerprint(userID, addressID uint, items []models.CartItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%d:%d:%s", item.FlowerID, item.Quantity, item.UnitPrice.String()))
	}
	sort.Strings(lines)
	payload := fmt.Sprintf("%d|%d|%s", userID, addressID, strings.Join(lines, ";"))
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("BL%s%s", now, randPart)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
