package provider

import (
	"github.com/bloomery-shop/internal/authz"
	"github.com/bloomery-shop/internal/cache"
	"github.com/bloomery-shop/internal/config"
	"github.com/bloomery-shop/internal/logger"
	"github.com/bloomery-shop/internal/models"
	"github.com/bloomery-shop/internal/queue"
	"github.com/bloomery-shop/internal/repository"
	"github.com/bloomery-shop/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo    repository.UserRepository
	FlowerRepo  repository.FlowerRepository
	CartRepo    repository.CartRepository
	AddressRepo repository.AddressRepository
	OrderRepo   repository.OrderRepository

	// Services
	AuthzService   *authz.Service
	AuthService    *service.AuthService
	FlowerService  *service.FlowerService
	CartService    *service.CartService
	AddressService *service.AddressService
	OrderService   *service.OrderService
	EmailService   *service.EmailService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.FlowerRepo = repository.NewFlowerRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.UserRepo, c.Config)
	c.FlowerService = service.NewFlowerService(c.FlowerRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.FlowerRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.OrderService = service.NewOrderService(
		models.DB,
		c.OrderRepo,
		c.CartRepo,
		c.FlowerRepo,
		c.AddressRepo,
		c.QueueClient,
		c.Config.Checkout,
	)
}
