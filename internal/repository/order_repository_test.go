package repository

import (
	"testing"
	"time"

	"github.com/bloomery-shop/internal/constants"
	"github.com/bloomery-shop/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Flower{}, &models.Address{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	for _, table := range []string{"order_items", "orders", "addresses", "flowers", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("reset table %s failed: %v", table, err)
		}
	}
	return NewOrderRepository(db), db
}

func createRepoOrder(t *testing.T, repo *GormOrderRepository, userID uint, orderNo, status, fingerprint string, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:         orderNo,
		UserID:          userID,
		AddressID:       1,
		Status:          status,
		PaymentMethod:   constants.PaymentMethodQRCode,
		PaymentStatus:   constants.PaymentStatusPending,
		Subtotal:        models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		ShippingFee:     models.NewMoneyFromDecimal(decimal.RequireFromString("5.99")),
		Tax:             models.NewMoneyFromDecimal(decimal.RequireFromString("1.60")),
		TotalAmount:     models.NewMoneyFromDecimal(decimal.RequireFromString("27.59")),
		CartFingerprint: fingerprint,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	items := []models.OrderItem{
		{FlowerID: 1, FlowerName: "Roses", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), Quantity: 2, TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(20))},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestCreateAssignsOrderIDToItems(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	order := createRepoOrder(t, repo, 1, "BL0001", constants.OrderStatusProcessing, "fp-create", time.Now())

	var items []models.OrderItem
	if err := db.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		t.Fatalf("load items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestFindRecentByFingerprint(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	now := time.Now()
	createRepoOrder(t, repo, 2, "BL0002", constants.OrderStatusProcessing, "fp-dup", now.Add(-10*time.Second))
	createRepoOrder(t, repo, 2, "BL0003", constants.OrderStatusCancelled, "fp-cancelled", now.Add(-5*time.Second))
	createRepoOrder(t, repo, 2, "BL0004", constants.OrderStatusProcessing, "fp-old", now.Add(-10*time.Minute))

	// 窗口内指纹命中
	found, err := repo.FindRecentByFingerprint(2, "fp-dup", now.Add(-30*time.Second))
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found == nil || found.OrderNo != "BL0002" {
		t.Fatalf("expected BL0002, got %+v", found)
	}

	// 已取消订单不计入重复
	found, err = repo.FindRecentByFingerprint(2, "fp-cancelled", now.Add(-30*time.Second))
	if err != nil {
		t.Fatalf("find cancelled failed: %v", err)
	}
	if found != nil {
		t.Fatalf("cancelled order should not match, got %+v", found)
	}

	// 窗口外订单不计入重复
	found, err = repo.FindRecentByFingerprint(2, "fp-old", now.Add(-30*time.Second))
	if err != nil {
		t.Fatalf("find old failed: %v", err)
	}
	if found != nil {
		t.Fatalf("stale order should not match, got %+v", found)
	}

	// 其他用户同指纹不计入重复
	found, err = repo.FindRecentByFingerprint(99, "fp-dup", now.Add(-30*time.Second))
	if err != nil {
		t.Fatalf("find foreign failed: %v", err)
	}
	if found != nil {
		t.Fatalf("foreign user order should not match, got %+v", found)
	}

	// 空指纹直接跳过
	found, err = repo.FindRecentByFingerprint(2, "", now.Add(-30*time.Second))
	if err != nil || found != nil {
		t.Fatalf("empty fingerprint should be a no-op, got %+v %v", found, err)
	}
}

func TestListAdminFilters(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	now := time.Now()
	createRepoOrder(t, repo, 3, "BL0010", constants.OrderStatusProcessing, "fp-a", now)
	createRepoOrder(t, repo, 3, "BL0011", constants.OrderStatusShipped, "fp-b", now)
	createRepoOrder(t, repo, 4, "BL0012", constants.OrderStatusProcessing, "fp-c", now)

	orders, total, err := repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, Status: constants.OrderStatusProcessing})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 processing orders, got total=%d len=%d", total, len(orders))
	}

	orders, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, UserID: 4})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 1 || orders[0].OrderNo != "BL0012" {
		t.Fatalf("expected BL0012 only, got total=%d %+v", total, orders)
	}

	orders, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, OrderNo: "BL0011"})
	if err != nil {
		t.Fatalf("list by order no failed: %v", err)
	}
	if total != 1 || orders[0].Status != constants.OrderStatusShipped {
		t.Fatalf("expected shipped BL0011, got %+v", orders)
	}
}

func TestOrderListingsPreloadAddress(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	address := &models.Address{UserID: 6, Street: "12 Orchid Lane", City: "Phnom Penh", Province: "Phnom Penh", Country: "Cambodia", Label: "Home"}
	if err := db.Create(address).Error; err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	order := createRepoOrder(t, repo, 6, "BL0040", constants.OrderStatusProcessing, "", time.Now())
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("address_id", address.ID).Error; err != nil {
		t.Fatalf("bind address failed: %v", err)
	}

	orders, _, err := repo.ListByUser(OrderListFilter{UserID: 6, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if len(orders) != 1 || orders[0].Address == nil || orders[0].Address.Street != "12 Orchid Lane" {
		t.Fatalf("expected address preloaded in user listing, got %+v", orders)
	}

	orders, err = repo.RecentByUser(6, 5)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(orders) != 1 || orders[0].Address == nil {
		t.Fatalf("expected address preloaded in recent listing, got %+v", orders)
	}

	orders, _, err = repo.ListAdmin(OrderListFilter{UserID: 6, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(orders) != 1 || orders[0].Address == nil || orders[0].Address.City != "Phnom Penh" {
		t.Fatalf("expected address preloaded in admin listing, got %+v", orders)
	}
}

func TestRecentByUserSkipsCancelled(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	now := time.Now()
	for i := 0; i < 7; i++ {
		status := constants.OrderStatusProcessing
		if i == 0 {
			status = constants.OrderStatusCancelled
		}
		createRepoOrder(t, repo, 5, "BL002"+string(rune('0'+i)), status, "", now.Add(time.Duration(i)*time.Second))
	}

	orders, err := repo.RecentByUser(5, 5)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(orders) != 5 {
		t.Fatalf("expected 5 recent orders, got %d", len(orders))
	}
	for _, order := range orders {
		if order.Status == constants.OrderStatusCancelled {
			t.Fatalf("cancelled order leaked into recent list")
		}
	}
	// 按创建时间倒序
	if orders[0].CreatedAt.Before(orders[1].CreatedAt) {
		t.Fatalf("expected newest first")
	}
}

func TestResolveReceiverEmailByOrderID(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	user := &models.User{Username: "receiver", Email: "receiver@example.com", PasswordHash: "hash", Role: constants.UserRoleCustomer}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := createRepoOrder(t, repo, user.ID, "BL0030", constants.OrderStatusProcessing, "", time.Now())

	email, err := repo.ResolveReceiverEmailByOrderID(order.ID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if email != "receiver@example.com" {
		t.Fatalf("expected receiver@example.com, got %s", email)
	}

	email, err = repo.ResolveReceiverEmailByOrderID(order.ID + 999)
	if err != nil || email != "" {
		t.Fatalf("expected empty email for missing order, got %q %v", email, err)
	}
}
