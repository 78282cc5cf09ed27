package service

import (
	"errors"
	"testing"

	"github.com/bloomery-shop/internal/constants"
	"github.com/bloomery-shop/internal/models"
	"github.com/bloomery-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Flower{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	for _, table := range []string{"cart_items", "flowers"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("reset table %s failed: %v", table, err)
		}
	}
	return NewCartService(repository.NewCartRepository(db), repository.NewFlowerRepository(db)), db
}

func createCartFlower(t *testing.T, db *gorm.DB, name, price string, active bool) *models.Flower {
	t.Helper()
	flower := &models.Flower{
		Name:     name,
		Price:    models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Category: constants.FlowerCategoryTulips,
		Stock:    100,
		IsActive: active,
	}
	if err := db.Create(flower).Error; err != nil {
		t.Fatalf("create flower failed: %v", err)
	}
	return flower
}

func TestAddItemMergesQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	flower := createCartFlower(t, db, "Merge Tulips", "4.50", true)

	if err := svc.AddItem(AddCartItemInput{UserID: 1, FlowerID: flower.ID, Quantity: 2}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.AddItem(AddCartItemInput{UserID: 1, FlowerID: flower.ID, Quantity: 3}); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	items, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected merged single line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
	if items[0].LineTotal.String() != "22.50" {
		t.Fatalf("expected line total 22.50, got %s", items[0].LineTotal.String())
	}
}

func TestAddItemSnapshotsUnitPrice(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	flower := createCartFlower(t, db, "Snapshot Tulips", "7.00", true)

	if err := svc.AddItem(AddCartItemInput{UserID: 2, FlowerID: flower.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 商品随后涨价，购物车单价保持加入时快照
	if err := db.Model(&models.Flower{}).Where("id = ?", flower.ID).
		Update("price", decimal.RequireFromString("9.99")).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	items, err := svc.ListByUser(2)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if items[0].UnitPrice.String() != "7.00" {
		t.Fatalf("expected snapshot price 7.00, got %s", items[0].UnitPrice.String())
	}
}

func TestAddItemRejectsInactiveFlower(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	flower := createCartFlower(t, db, "Retired Tulips", "3.00", false)

	err := svc.AddItem(AddCartItemInput{UserID: 3, FlowerID: flower.ID, Quantity: 1})
	if !errors.Is(err, ErrFlowerNotAvailable) {
		t.Fatalf("expected ErrFlowerNotAvailable, got %v", err)
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	flower := createCartFlower(t, db, "Adjust Tulips", "5.00", true)

	if err := svc.AddItem(AddCartItemInput{UserID: 4, FlowerID: flower.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.UpdateItemQuantity(4, flower.ID, 7); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}

	items, err := svc.ListByUser(4)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", items[0].Quantity)
	}

	if err := svc.UpdateItemQuantity(4, flower.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := svc.UpdateItemQuantity(4, flower.ID+999, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	first := createCartFlower(t, db, "First Tulips", "5.00", true)
	second := createCartFlower(t, db, "Second Tulips", "6.00", true)

	if err := svc.AddItem(AddCartItemInput{UserID: 5, FlowerID: first.ID, Quantity: 1}); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if err := svc.AddItem(AddCartItemInput{UserID: 5, FlowerID: second.ID, Quantity: 2}); err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	if err := svc.RemoveItem(5, first.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	count, err := svc.Count(5)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2 after removal, got %d", count)
	}

	if err := svc.Clear(5); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	count, err = svc.Count(5)
	if err != nil {
		t.Fatalf("count after clear failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty cart, got count %d", count)
	}
}

func TestListByUserEvictsInactiveFlower(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	flower := createCartFlower(t, db, "Soon Gone Tulips", "5.00", true)

	if err := svc.AddItem(AddCartItemInput{UserID: 6, FlowerID: flower.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := db.Model(&models.Flower{}).Where("id = ?", flower.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate flower failed: %v", err)
	}

	items, err := svc.ListByUser(6)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected inactive flower evicted, got %d items", len(items))
	}

	var remaining int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 6).Count(&remaining).Error; err != nil {
		t.Fatalf("count cart rows failed: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected cart row removed, got %d", remaining)
	}
}
