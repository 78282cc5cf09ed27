package repository

import (
	"testing"

	"github.com/bloomery-shop/internal/constants"
	"github.com/bloomery-shop/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupFlowerRepositoryTest(t *testing.T) (*GormFlowerRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Flower{}); err != nil {
		t.Fatalf("migrate flowers failed: %v", err)
	}
	if err := db.Exec("DELETE FROM flowers").Error; err != nil {
		t.Fatalf("reset flowers failed: %v", err)
	}
	return NewFlowerRepository(db), db
}

func TestDecrementStockConditional(t *testing.T) {
	repo, db := setupFlowerRepositoryTest(t)
	flower := &models.Flower{
		Name:     "Stocked Roses",
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Category: constants.FlowerCategoryRoses,
		Stock:    3,
		IsActive: true,
	}
	if err := db.Create(flower).Error; err != nil {
		t.Fatalf("create flower failed: %v", err)
	}

	affected, err := repo.DecrementStock(flower.ID, 2)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	// 余量不足时不扣减
	affected, err = repo.DecrementStock(flower.ID, 2)
	if err != nil {
		t.Fatalf("second decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected no rows affected on insufficient stock, got %d", affected)
	}

	var reloaded models.Flower
	if err := db.First(&reloaded, flower.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Stock != 1 {
		t.Fatalf("expected stock 1, got %d", reloaded.Stock)
	}
}

func TestFlowerListSearch(t *testing.T) {
	repo, db := setupFlowerRepositoryTest(t)
	seed := []models.Flower{
		{Name: "Velvet Rose Bouquet", Category: constants.FlowerCategoryRoses, Price: models.NewMoneyFromDecimal(decimal.NewFromInt(20)), Stock: 5, IsActive: true},
		{Name: "Tulip Basket", Category: constants.FlowerCategoryTulips, Price: models.NewMoneyFromDecimal(decimal.NewFromInt(15)), Stock: 5, IsActive: true},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed flower failed: %v", err)
		}
	}

	flowers, total, err := repo.List(FlowerListFilter{Page: 1, PageSize: 10, Search: "rose"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || flowers[0].Name != "Velvet Rose Bouquet" {
		t.Fatalf("expected one rose match, got total=%d %+v", total, flowers)
	}
}

func TestGetActiveByIDHidesInactive(t *testing.T) {
	repo, db := setupFlowerRepositoryTest(t)
	flower := &models.Flower{
		Name:     "Hidden Lily",
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(8)),
		Category: constants.FlowerCategoryLilies,
		Stock:    2,
		IsActive: false,
	}
	if err := db.Create(flower).Error; err != nil {
		t.Fatalf("create flower failed: %v", err)
	}

	found, err := repo.GetActiveByID(flower.ID)
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if found != nil {
		t.Fatalf("inactive flower should not resolve, got %+v", found)
	}

	found, err = repo.GetByID(flower.ID)
	if err != nil || found == nil {
		t.Fatalf("plain lookup should resolve, got %+v %v", found, err)
	}
}
