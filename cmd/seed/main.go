package main

import (
	"github.com/bloomery-shop/internal/config"
	"github.com/bloomery-shop/internal/constants"
	"github.com/bloomery-shop/internal/logger"
	"github.com/bloomery-shop/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("", "", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 演示鲜花商品
	flowers := []models.Flower{
		{
			Name:        "Classic Red Roses",
			Description: "A dozen long-stem red roses, hand-tied with eucalyptus.",
			Price:       money("39.99"),
			Category:    constants.FlowerCategoryRoses,
			Stock:       50,
			ImageURL:    "/uploads/flowers/classic-red-roses.jpg",
			IsActive:    true,
			IsFeatured:  true,
		},
		{
			Name:        "Pink Rose Bouquet",
			Description: "Soft pink roses wrapped in kraft paper.",
			Price:       money("34.99"),
			Category:    constants.FlowerCategoryRoses,
			Stock:       40,
			ImageURL:    "/uploads/flowers/pink-rose-bouquet.jpg",
			IsActive:    true,
		},
		{
			Name:        "Sunny Day Sunflowers",
			Description: "Bright sunflowers to light up any room.",
			Price:       money("24.99"),
			Category:    constants.FlowerCategorySunflowers,
			Stock:       60,
			ImageURL:    "/uploads/flowers/sunny-day-sunflowers.jpg",
			IsActive:    true,
			IsFeatured:  true,
		},
		{
			Name:        "White Lily Elegance",
			Description: "Fragrant white lilies for a graceful gift.",
			Price:       money("29.99"),
			Category:    constants.FlowerCategoryLilies,
			Stock:       35,
			ImageURL:    "/uploads/flowers/white-lily-elegance.jpg",
			IsActive:    true,
		},
		{
			Name:        "Dutch Tulip Mix",
			Description: "A colorful mix of fresh Dutch tulips.",
			Price:       money("27.99"),
			Category:    constants.FlowerCategoryTulips,
			Stock:       45,
			ImageURL:    "/uploads/flowers/dutch-tulip-mix.jpg",
			IsActive:    true,
		},
		{
			Name:        "Purple Orchid Plant",
			Description: "A potted phalaenopsis orchid that lasts for months.",
			Price:       money("49.99"),
			Category:    constants.FlowerCategoryOrchids,
			Stock:       20,
			ImageURL:    "/uploads/flowers/purple-orchid-plant.jpg",
			IsActive:    true,
		},
		{
			Name:        "Garden Party Mix",
			Description: "Seasonal mixed bouquet picked by our florists.",
			Price:       money("32.99"),
			Category:    constants.FlowerCategoryMixed,
			Stock:       30,
			ImageURL:    "/uploads/flowers/garden-party-mix.jpg",
			IsActive:    true,
			IsFeatured:  true,
		},
	}

	for _, flower := range flowers {
		var existing models.Flower
		if err := models.DB.Where("name = ?", flower.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&flower).Error; err != nil {
				stdLog.Printf("Failed to create flower %s: %v", flower.Name, err)
			} else {
				stdLog.Printf("Created flower: %s", flower.Name)
			}
		} else {
			stdLog.Printf("Flower already exists: %s", flower.Name)
		}
	}

	// 演示顾客账号
	demoEmail := "demo@bloomery.local"
	var existingUser models.User
	if err := models.DB.Where("email = ?", demoEmail).First(&existingUser).Error; err != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
		if hashErr != nil {
			stdLog.Fatalf("Failed to hash demo password: %v", hashErr)
		}
		demoUser := models.User{
			Username:     "demo",
			Email:        demoEmail,
			PasswordHash: string(hash),
			FirstName:    "Demo",
			LastName:     "Customer",
			Role:         constants.UserRoleCustomer,
		}
		if err := models.DB.Create(&demoUser).Error; err != nil {
			stdLog.Printf("Failed to create demo user: %v", err)
		} else {
			stdLog.Printf("Created demo user: %s (password: demo1234)", demoEmail)
			address := models.Address{
				UserID:    demoUser.ID,
				Street:    "12 Orchid Lane",
				City:      "Phnom Penh",
				Commune:   "Boeung Keng Kang",
				Province:  "Phnom Penh",
				Country:   "Cambodia",
				Label:     "Home",
				IsDefault: true,
			}
			if err := models.DB.Create(&address).Error; err != nil {
				stdLog.Printf("Failed to create demo address: %v", err)
			}
		}
	} else {
		stdLog.Printf("Demo user already exists: %s", demoEmail)
	}

	stdLog.Println("Seed finished")
}

func money(value string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(value))
}
