package provider

import (
	"github.com/nthcart/internal/cache"
	"github.com/nthcart/internal/config"
	"github.com/nthcart/internal/logger"
	"github.com/nthcart/internal/models"
	"github.com/nthcart/internal/repository"
	"github.com/nthcart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	AdminRepo    repository.AdminRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
	DiscountRepo repository.DiscountCodeRepository
	AppStateRepo repository.AppStateRepository
	StatsRepo    repository.StatsRepository

	// Services
	AuthService  *service.AuthService
	CartService  *service.CartService
	OrderService *service.OrderService
	AdminService *service.AdminService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.DiscountRepo = repository.NewDiscountCodeRepository(db)
	c.AppStateRepo = repository.NewAppStateRepository(db)
	c.StatsRepo = repository.NewStatsRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CartService = service.NewCartService(c.CartRepo)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.CartRepo,
		c.DiscountRepo,
		c.AppStateRepo,
		c.Config.Discount.Percent,
		c.Config.Discount.NthOrder,
	)
	c.AdminService = service.NewAdminService(c.StatsRepo, c.DiscountRepo)
}
