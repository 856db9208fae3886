package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/nthcart/internal/models"
	"github.com/nthcart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupAdminServiceTest(t *testing.T) (*AdminService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:admin_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.DiscountCode{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	return NewAdminService(
		repository.NewStatsRepository(db),
		repository.NewDiscountCodeRepository(db),
	), db
}

func createTestOrder(t *testing.T, db *gorm.DB, total, discount string, quantities ...int) {
	t.Helper()

	now := time.Now()
	order := models.Order{
		OrderNo:        fmt.Sprintf("NC%d", time.Now().UnixNano()),
		UserID:         "user-1",
		Subtotal:       models.NewMoneyFromDecimal(decimal.RequireFromString(total).Add(decimal.RequireFromString(discount))),
		DiscountAmount: models.NewMoneyFromDecimal(decimal.RequireFromString(discount)),
		Total:          models.NewMoneyFromDecimal(decimal.RequireFromString(total)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	for i, quantity := range quantities {
		item := models.OrderItem{
			OrderID:   order.ID,
			ItemID:    fmt.Sprintf("sku-%d", i),
			Name:      "item",
			Price:     models.NewMoneyFromDecimal(decimal.NewFromInt(1)),
			Quantity:  quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("create order item failed: %v", err)
		}
	}
}

func TestGetStatisticsEmptyDatabase(t *testing.T) {
	svc, _ := setupAdminServiceTest(t)

	stats, err := svc.GetStatistics()
	if err != nil {
		t.Fatalf("get statistics failed: %v", err)
	}
	if stats.TotalOrders != 0 {
		t.Fatalf("expected 0 orders, got %d", stats.TotalOrders)
	}
	if stats.TotalItemsPurchased != 0 {
		t.Fatalf("expected 0 items, got %d", stats.TotalItemsPurchased)
	}
	if stats.TotalPurchaseAmount != "0.00" {
		t.Fatalf("expected 0.00 purchase amount, got %s", stats.TotalPurchaseAmount)
	}
	if stats.TotalDiscountAmount != "0.00" {
		t.Fatalf("expected 0.00 discount amount, got %s", stats.TotalDiscountAmount)
	}
	if len(stats.DiscountCodesGenerated) != 0 || len(stats.DiscountCodesUsed) != 0 {
		t.Fatalf("expected empty code lists, got %d/%d",
			len(stats.DiscountCodesGenerated), len(stats.DiscountCodesUsed))
	}
}

func TestGetStatisticsAggregates(t *testing.T) {
	svc, db := setupAdminServiceTest(t)
	createTestOrder(t, db, "18.90", "2.10", 1, 2)
	createTestOrder(t, db, "10.00", "0.00", 5)

	now := time.Now()
	older := models.DiscountCode{
		Code:            "DISCOUNT-OLDCODE1",
		DiscountPercent: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive:        false,
		IsUsed:          true,
		CreatedAt:       now.Add(-time.Hour),
		UpdatedAt:       now,
	}
	newer := models.DiscountCode{
		Code:            "DISCOUNT-NEWCODE1",
		DiscountPercent: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive:        true,
		IsUsed:          false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.Create(&older).Error; err != nil {
		t.Fatalf("create code failed: %v", err)
	}
	if err := db.Create(&newer).Error; err != nil {
		t.Fatalf("create code failed: %v", err)
	}

	stats, err := svc.GetStatistics()
	if err != nil {
		t.Fatalf("get statistics failed: %v", err)
	}
	if stats.TotalOrders != 2 {
		t.Fatalf("expected 2 orders, got %d", stats.TotalOrders)
	}
	if stats.TotalItemsPurchased != 8 {
		t.Fatalf("expected 8 items purchased, got %d", stats.TotalItemsPurchased)
	}
	if stats.TotalPurchaseAmount != "28.90" {
		t.Fatalf("expected 28.90 purchase amount, got %s", stats.TotalPurchaseAmount)
	}
	if stats.TotalDiscountAmount != "2.10" {
		t.Fatalf("expected 2.10 discount amount, got %s", stats.TotalDiscountAmount)
	}
	if len(stats.DiscountCodesGenerated) != 2 {
		t.Fatalf("expected 2 generated codes, got %d", len(stats.DiscountCodesGenerated))
	}
	// 按创建时间倒序
	if stats.DiscountCodesGenerated[0].Code != "DISCOUNT-NEWCODE1" {
		t.Fatalf("expected newest code first, got %s", stats.DiscountCodesGenerated[0].Code)
	}
	if len(stats.DiscountCodesUsed) != 1 || stats.DiscountCodesUsed[0].Code != "DISCOUNT-OLDCODE1" {
		t.Fatalf("unexpected used codes: %+v", stats.DiscountCodesUsed)
	}
}

func TestGetActiveDiscountCode(t *testing.T) {
	svc, db := setupAdminServiceTest(t)

	code, err := svc.GetActiveDiscountCode()
	if err != nil {
		t.Fatalf("get active code failed: %v", err)
	}
	if code != nil {
		t.Fatalf("expected nil without active codes, got %+v", code)
	}

	now := time.Now()
	row := models.DiscountCode{
		Code:            "DISCOUNT-ACTIVE01",
		DiscountPercent: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive:        true,
		IsUsed:          false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create code failed: %v", err)
	}

	code, err = svc.GetActiveDiscountCode()
	if err != nil {
		t.Fatalf("get active code failed: %v", err)
	}
	if code == nil || code.Code != "DISCOUNT-ACTIVE01" {
		t.Fatalf("unexpected active code: %+v", code)
	}
}
