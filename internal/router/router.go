package router

import (
	"fmt"
	"strings"

	"github.com/bloomery-shop/internal/cache"
	"github.com/bloomery-shop/internal/config"
	adminhandlers "github.com/bloomery-shop/internal/http/handlers/admin"
	publichandlers "github.com/bloomery-shop/internal/http/handlers/public"
	"github.com/bloomery-shop/internal/logger"
	"github.com/bloomery-shop/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bloomery"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		publicGroup := apiV1.Group("/public")
		{
			publicGroup.GET("/flowers", publicHandler.ListFlowers)
			publicGroup.GET("/flowers/featured", publicHandler.ListFeaturedFlowers)
			publicGroup.GET("/flowers/:id", publicHandler.GetFlower)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetProfile)
			user.PUT("/me/profile", publicHandler.UpdateProfile)

			user.GET("/cart", publicHandler.GetCart)
			user.GET("/cart/count", publicHandler.GetCartCount)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:flower_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:flower_id", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.GET("/addresses", publicHandler.ListAddresses)
			user.GET("/addresses/labels", publicHandler.ListAddressLabels)
			user.GET("/addresses/:id", publicHandler.GetAddress)
			user.POST("/addresses", publicHandler.CreateAddress)
			user.PUT("/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/addresses/:id", publicHandler.DeleteAddress)

			user.POST("/orders/checkout", publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/recent", publicHandler.ListRecentOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			authorized := admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), AdminRBACMiddleware(c.AuthzService))
			{
				// 商品管理
				authorized.GET("/flowers", adminHandler.ListFlowers)
				authorized.GET("/flowers/:id", adminHandler.GetFlower)
				authorized.POST("/flowers", adminHandler.CreateFlower)
				authorized.PUT("/flowers/:id", adminHandler.UpdateFlower)
				authorized.PATCH("/flowers/:id/stock", adminHandler.UpdateFlowerStock)
				authorized.DELETE("/flowers/:id", adminHandler.DeleteFlower)

				// 订单管理
				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.GET("/orders/:id/items", adminHandler.ListOrderItems)
				authorized.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
				authorized.PATCH("/orders/:id/payment-status", adminHandler.UpdateOrderPaymentStatus)

				// 用户管理
				authorized.GET("/users", adminHandler.ListUsers)
				authorized.GET("/users/:id", adminHandler.GetUser)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
