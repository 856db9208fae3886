package router

import (
	"fmt"
	"strings"

	"github.com/nthcart/internal/cache"
	"github.com/nthcart/internal/config"
	adminhandlers "github.com/nthcart/internal/http/handlers/admin"
	publichandlers "github.com/nthcart/internal/http/handlers/public"
	"github.com/nthcart/internal/http/response"
	"github.com/nthcart/internal/logger"
	"github.com/nthcart/internal/provider"

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
		redisPrefix = "nc"
	}
	redisClient := cache.Client()
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.CheckoutRateLimit.BlockSeconds,
		Message:       "Checkout attempted too frequently",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "Too many login attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 购物车
	cart := r.Group("/cart")
	{
		cart.POST("", publicHandler.AddToCart)
		cart.GET("/:userId", publicHandler.GetCart)
	}

	// 订单
	order := r.Group("/order")
	{
		order.POST("/checkout",
			RateLimitMiddleware(redisClient, checkoutRule, KeyByIPAndJSONField("userId")),
			publicHandler.Checkout,
		)
	}

	// 管理端
	admin := r.Group("/admin")
	{
		admin.POST("/login",
			RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")),
			adminHandler.Login,
		)

		guarded := admin.Group("")
		// secret 未配置时管理端只读接口保持开放
		if strings.TrimSpace(cfg.AdminJWT.SecretKey) != "" {
			guarded.Use(JWTAuthMiddleware(cfg.AdminJWT.SecretKey, c.AdminRepo))
		}
		{
			guarded.GET("/discount/active", adminHandler.GetActiveDiscount)
			guarded.GET("/stats", adminHandler.GetStats)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	return r
}
