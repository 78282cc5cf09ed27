package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/bloomery-shop/internal/config"
	"github.com/bloomery-shop/internal/constants"
	"github.com/bloomery-shop/internal/models"
	"github.com/bloomery-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Flower{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	for _, table := range []string{"order_items", "orders", "cart_items", "addresses", "flowers", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("reset table %s failed: %v", table, err)
		}
	}

	svc := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewFlowerRepository(db),
		repository.NewAddressRepository(db),
		nil,
		config.CheckoutConfig{
			ShippingFee:            "5.99",
			TaxRate:                "0.08",
			DuplicateWindowSeconds: 30,
		},
	)
	return svc, db
}

func createCheckoutUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         constants.UserRoleCustomer,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createCheckoutAddress(t *testing.T, db *gorm.DB, userID uint) *models.Address {
	t.Helper()
	address := &models.Address{
		UserID:  userID,
		Street:  "12 Orchid Lane",
		City:    "Phnom Penh",
		Country: "Cambodia",
	}
	if err := db.Create(address).Error; err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	return address
}

func createCheckoutFlower(t *testing.T, db *gorm.DB, name, price string, stock int) *models.Flower {
	t.Helper()
	flower := &models.Flower{
		Name:     name,
		Price:    models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Category: constants.FlowerCategoryRoses,
		Stock:    stock,
		IsActive: true,
	}
	if err := db.Create(flower).Error; err != nil {
		t.Fatalf("create flower failed: %v", err)
	}
	return flower
}

func addCartLine(t *testing.T, db *gorm.DB, userID uint, flower *models.Flower, quantity int) {
	t.Helper()
	item := &models.CartItem{
		UserID:    userID,
		FlowerID:  flower.ID,
		Quantity:  quantity,
		UnitPrice: flower.Price,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
}

func TestCheckoutIgnoresClientTotal(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createCheckoutUser(t, db, "clienttotal")
	address := createCheckoutAddress(t, db, user.ID)
	roses := createCheckoutFlower(t, db, "Client Total Roses", "10.00", 10)
	addCartLine(t, db, user.ID, roses, 2)

	// 客户端报价与服务端不一致时仅记录日志，金额以服务端为准
	stale := mustMoney(t, "3.50")
	order, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, ClientTotal: &stale})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.TotalAmount.String() != "27.59" {
		t.Fatalf("expected server-computed total 27.59, got %s", order.TotalAmount.String())
	}
}

func TestCheckoutComputesTotals(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createCheckoutUser(t, db, "totals")
	address := createCheckoutAddress(t, db, user.ID)
	roses := createCheckoutFlower(t, db, "Red Roses", "10.00", 10)
	tulips := createCheckoutFlower(t, db, "Tulips", "5.00", 10)
	addCartLine(t, db, user.ID, roses, 2)
	addCartLine(t, db, user.ID, tulips, 1)

	order, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Subtotal.String() != "25.00" {
		t.Fatalf("expected subtotal 25.00, got %s", order.Subtotal.String())
	}
	if order.ShippingFee.String() != "5.99" {
		t.Fatalf("expected shipping fee 5.99, got %s", order.ShippingFee.String())
	}
	if order.Tax.String() != "2.00" {
		t.Fatalf("expected tax 2.00, got %s", order.Tax.String())
	}
	if order.TotalAmount.String() != "32.99" {
		t.Fatalf("expected total 32.99, got %s", order.TotalAmount.String())
	}
	if order.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected status processing, got %s", order.Status)
	}
	if order.PaymentMethod != constants.PaymentMethodQRCode {
		t.Fatalf("expected default payment method qr_code, got %s", order.PaymentMethod)
	}
	if order.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("expected payment status pending, got %s", order.PaymentStatus)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}

	// 购物车已清空
	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected empty cart after checkout, got %d items", cartCount)
	}

	// 库存已扣减
	var reloaded models.Flower
	if err := db.First(&reloaded, roses.ID).Error; err != nil {
		t.Fatalf("reload flower failed: %v", err)
	}
	if reloaded.Stock != 8 {
		t.Fatalf("expected stock 8 after checkout, got %d", reloaded.Stock)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createCheckoutUser(t, db, "emptycart")
	address := createCheckoutAddress(t, db, user.ID)

	_, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutRejectsForeignAddress(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createCheckoutUser(t, db, "owner")
	other := createCheckoutUser(t, db, "intruder")
	foreignAddress := createCheckoutAddress(t, db, user.ID)
	flower := createCheckoutFlower(t, db, "Lilies", "8.00", 5)
	addCartLine(t, db, other.ID, flower, 1)

	_, err := svc.Checkout(CheckoutInput{UserID: other.ID, AddressID: foreignAddress.ID})
	if !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestCheckoutInvalidPaymentMethod(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createCheckoutUser(t, db, "badpay")
	address := createCheckoutAddress(t, db, user.ID)
	flower := createCheckoutFlower(t, db, "Orchids", "20.00", 5)
	addCartLine(t, db, user.ID, flower, 1)

	_, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, PaymentMethod: "bank_wire"})
	if !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("expected ErrPaymentMethodInvalid, got %v", err)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createCheckoutUser(t, db, "nostock")
	address := createCheckoutAddress(t, db, user.ID)
	flower := createCheckoutFlower(t, db, "Scarce Roses", "10.00", 1)
	addCartLine(t, db, user.ID, flower, 3)

	_, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID})
	if !errors.Is(err, ErrFlowerOutOfStock) {
		t.Fatalf("expected ErrFlowerOutOfStock, got %v", err)
	}

	// 事务回滚：无订单落库，购物车保持原样
	var orderCount int64
	if err := db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders after failed checkout, got %d", orderCount)
	}
	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 1 {
		t.Fatalf("expected cart untouched after failed checkout, got %d items", cartCount)
	}
}

func TestCheckoutDuplicateSubmission(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createCheckoutUser(t, db, "doubleclick")
	address := createCheckoutAddress(t, db, user.ID)
	flower := createCheckoutFlower(t, db, "Sunflowers", "6.00", 20)
	addCartLine(t, db, user.ID, flower, 2)

	if _, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID}); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	// 重新放入完全相同的购物车并立即再次提交
	addCartLine(t, db, user.ID, flower, 2)
	_, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID})
	if !errors.Is(err, ErrDuplicateCheckout) {
		t.Fatalf("expected ErrDuplicateCheckout, got %v", err)
	}
}

func TestListByUserExcludesCancelled(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createCheckoutUser(t, db, "lister")
	address := createCheckoutAddress(t, db, user.ID)
	flower := createCheckoutFlower(t, db, "Mixed Bouquet", "12.00", 50)

	var orderIDs []uint
	for i := 0; i < 3; i++ {
		addCartLine(t, db, user.ID, flower, i+1)
		order, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID})
		if err != nil {
			t.Fatalf("checkout %d failed: %v", i, err)
		}
		orderIDs = append(orderIDs, order.ID)
	}

	if _, err := svc.UpdateStatus(orderIDs[0], constants.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}

	orders, total, err := svc.ListByUser(user.ID, 1, 10)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 orders excluding cancelled, got total=%d len=%d", total, len(orders))
	}
	for _, order := range orders {
		if order.Status == constants.OrderStatusCancelled {
			t.Fatalf("cancelled order leaked into listing: %+v", order)
		}
	}

	recent, err := svc.RecentByUser(user.ID, 0)
	if err != nil {
		t.Fatalf("recent orders failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent orders, got %d", len(recent))
	}
}

func TestUpdateStatusSetsTimestamps(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createCheckoutUser(t, db, "shipper")
	address := createCheckoutAddress(t, db, user.ID)
	flower := createCheckoutFlower(t, db, "Delivery Roses", "15.00", 10)
	addCartLine(t, db, user.ID, flower, 1)

	order, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	updated, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", updated.Status)
	}
	if updated.DeliveredAt == nil {
		t.Fatalf("expected delivered_at to be set")
	}

	if _, err := svc.UpdateStatus(order.ID, "teleported"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestUpdatePaymentStatus(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createCheckoutUser(t, db, "payer")
	address := createCheckoutAddress(t, db, user.ID)
	flower := createCheckoutFlower(t, db, "Paid Roses", "9.00", 10)
	addCartLine(t, db, user.ID, flower, 1)

	order, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	updated, err := svc.UpdatePaymentStatus(order.ID, constants.PaymentStatusCompleted)
	if err != nil {
		t.Fatalf("update payment status failed: %v", err)
	}
	if updated.PaymentStatus != constants.PaymentStatusCompleted {
		t.Fatalf("expected completed, got %s", updated.PaymentStatus)
	}

	if _, err := svc.UpdatePaymentStatus(order.ID, "refund_pending"); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected ErrPaymentStatusInvalid, got %v", err)
	}
}

func TestBuildCartFingerprintStable(t *testing.T) {
	itemsA := []models.CartItem{
		{FlowerID: 2, Quantity: 1, UnitPrice: mustMoney(t, "5.00")},
		{FlowerID: 1, Quantity: 3, UnitPrice: mustMoney(t, "10.00")},
	}
	itemsB := []models.CartItem{
		{FlowerID: 1, Quantity: 3, UnitPrice: mustMoney(t, "10.00")},
		{FlowerID: 2, Quantity: 1, UnitPrice: mustMoney(t, "5.00")},
	}
	if buildCartFingerprint(7, 3, itemsA) != buildCartFingerprint(7, 3, itemsB) {
		t.Fatalf("fingerprint should not depend on cart line order")
	}
	if buildCartFingerprint(7, 3, itemsA) == buildCartFingerprint(8, 3, itemsA) {
		t.Fatalf("fingerprint should differ per user")
	}
	itemsC := []models.CartItem{
		{FlowerID: 1, Quantity: 2, UnitPrice: mustMoney(t, "10.00")},
		{FlowerID: 2, Quantity: 1, UnitPrice: mustMoney(t, "5.00")},
	}
	if buildCartFingerprint(7, 3, itemsA) == buildCartFingerprint(7, 3, itemsC) {
		t.Fatalf("fingerprint should differ when quantities change")
	}
}

func TestGenerateOrderNoFormat(t *testing.T) {
	orderNo := generateOrderNo()
	if !strings.HasPrefix(orderNo, "BL") {
		t.Fatalf("expected BL prefix, got %s", orderNo)
	}
	if len(orderNo) != 22 {
		t.Fatalf("expected 22 chars, got %d (%s)", len(orderNo), orderNo)
	}
	for _, r := range orderNo[2:] {
		if r < '0' || r > '9' {
			t.Fatalf("expected numeric body, got %s", orderNo)
		}
	}
}

func mustMoney(t *testing.T, value string) models.Money {
	t.Helper()
	money, err := models.NewMoneyFromString(value)
	if err != nil {
		t.Fatalf("parse money %q failed: %v", value, err)
	}
	return money
}
