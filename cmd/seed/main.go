package main

import (
	"time"

	"github.com/nthcart/internal/config"
	"github.com/nthcart/internal/constants"
	"github.com/nthcart/internal/logger"
	"github.com/nthcart/internal/models"

	"github.com/shopspring/decimal"
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

	now := time.Now()

	// 示例购物车
	cartItems := []models.CartItem{
		{
			UserID:   "demo-user",
			ItemID:   "sku-keyboard",
			Name:     "Mechanical Keyboard",
			Price:    models.NewMoneyFromDecimal(decimal.RequireFromString("10.00")),
			Quantity: 1,
		},
		{
			UserID:   "demo-user",
			ItemID:   "sku-mousepad",
			Name:     "Mousepad",
			Price:    models.NewMoneyFromDecimal(decimal.RequireFromString("5.50")),
			Quantity: 2,
		},
	}
	for _, item := range cartItems {
		var existing models.CartItem
		if err := models.DB.Where("user_id = ? AND item_id = ?", item.UserID, item.ItemID).First(&existing).Error; err != nil {
			item.CreatedAt = now
			item.UpdatedAt = now
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create cart item %s: %v", item.ItemID, err)
			} else {
				stdLog.Printf("Created cart item: %s", item.ItemID)
			}
		} else {
			stdLog.Printf("Cart item already exists: %s", item.ItemID)
		}
	}

	// 初始优惠码（存在生效码则跳过）
	var activeCount int64
	if err := models.DB.Model(&models.DiscountCode{}).
		Where("is_active = ? AND is_used = ?", true, false).
		Count(&activeCount).Error; err != nil {
		stdLog.Fatalf("Failed to count discount codes: %v", err)
	}
	if activeCount == 0 {
		code := models.DiscountCode{
			Code:            constants.DiscountCodePrefix + "WELCOME1",
			DiscountPercent: models.NewMoneyFromFloat(cfg.Discount.Percent),
			IsActive:        true,
			IsUsed:          false,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := models.DB.Create(&code).Error; err != nil {
			stdLog.Printf("Failed to create discount code: %v", err)
		} else {
			stdLog.Printf("Created discount code: %s", code.Code)
		}
	} else {
		stdLog.Printf("Active discount code already exists, skipped")
	}

	stdLog.Printf("Seed completed")
}
