package service

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/nthcart/internal/models"
	"github.com/nthcart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var discountCodePattern = regexp.MustCompile(`^DISCOUNT-[A-Za-z0-9]{8}$`)

func setupOrderServiceTest(t *testing.T, nthOrder int64) (*OrderService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:order_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DiscountCode{},
		&models.AppState{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewDiscountCodeRepository(db),
		repository.NewAppStateRepository(db),
		10,
		nthOrder,
	)
	return svc, db
}

func createTestCartItem(t *testing.T, db *gorm.DB, userID, itemID, price string, quantity int) {
	t.Helper()

	now := time.Now()
	row := models.CartItem{
		UserID:    userID,
		ItemID:    itemID,
		Name:      "item " + itemID,
		Price:     models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
}

func createTestDiscountCode(t *testing.T, db *gorm.DB, code string, percent int64, active, used bool) models.DiscountCode {
	t.Helper()

	now := time.Now()
	row := models.DiscountCode{
		Code:            code,
		DiscountPercent: models.NewMoneyFromDecimal(decimal.NewFromInt(percent)),
		IsActive:        active,
		IsUsed:          used,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create discount code failed: %v", err)
	}
	return row
}

func TestCheckoutWithoutDiscount(t *testing.T) {
	svc, db := setupOrderServiceTest(t, 5)
	createTestCartItem(t, db, "user-1", "sku-1", "10.00", 1)
	createTestCartItem(t, db, "user-1", "sku-2", "5.50", 2)

	order, err := svc.Checkout(CheckoutInput{UserID: "user-1"})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Subtotal.String() != "21.00" {
		t.Fatalf("expected subtotal 21.00, got %s", order.Subtotal.String())
	}
	if order.DiscountAmount.String() != "0.00" {
		t.Fatalf("expected discount 0.00, got %s", order.DiscountAmount.String())
	}
	if order.Total.String() != "21.00" {
		t.Fatalf("expected total 21.00, got %s", order.Total.String())
	}
	if order.DiscountCode != nil {
		t.Fatalf("expected no discount code, got %v", *order.DiscountCode)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	if order.OrderNo == "" {
		t.Fatalf("expected order no to be set")
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected empty cart after checkout, got %d rows", cartCount)
	}

	count, err := repository.NewAppStateRepository(db).GetOrderCount()
	if err != nil {
		t.Fatalf("get order count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected order count 1, got %d", count)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := setupOrderServiceTest(t, 5)

	_, err := svc.Checkout(CheckoutInput{UserID: "user-1"})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutZeroSubtotalClearsCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t, 5)
	createTestCartItem(t, db, "user-1", "sku-free", "0.00", 3)

	_, err := svc.Checkout(CheckoutInput{UserID: "user-1"})
	if !errors.Is(err, ErrCartZeroTotal) {
		t.Fatalf("expected ErrCartZeroTotal, got %v", err)
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart cleared despite failure, got %d rows", cartCount)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders, got %d", orderCount)
	}
}

func TestCheckoutWithValidDiscountCode(t *testing.T) {
	svc, db := setupOrderServiceTest(t, 5)
	createTestCartItem(t, db, "user-1", "sku-1", "10.00", 1)
	createTestCartItem(t, db, "user-1", "sku-2", "5.50", 2)
	code := createTestDiscountCode(t, db, "DISCOUNT-TESTCD01", 10, true, false)

	order, err := svc.Checkout(CheckoutInput{UserID: "user-1", DiscountCode: code.Code})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.DiscountAmount.String() != "2.10" {
		t.Fatalf("expected discount 2.10, got %s", order.DiscountAmount.String())
	}
	if order.Total.String() != "18.90" {
		t.Fatalf("expected total 18.90, got %s", order.Total.String())
	}
	if order.DiscountCode == nil || *order.DiscountCode != code.Code {
		t.Fatalf("expected applied code %s on the order, got %v", code.Code, order.DiscountCode)
	}

	var reloaded models.DiscountCode
	if err := db.First(&reloaded, code.ID).Error; err != nil {
		t.Fatalf("reload discount code failed: %v", err)
	}
	if !reloaded.IsUsed || reloaded.IsActive {
		t.Fatalf("expected code used and inactive, got used=%v active=%v", reloaded.IsUsed, reloaded.IsActive)
	}
	if reloaded.OrderUsedInID == nil || *reloaded.OrderUsedInID != order.ID {
		t.Fatalf("expected order_used_in_id %d, got %v", order.ID, reloaded.OrderUsedInID)
	}
}

func TestCheckoutIgnoresUnknownDiscountCode(t *testing.T) {
	svc, db := setupOrderServiceTest(t, 5)
	createTestCartItem(t, db, "user-1", "sku-1", "10.00", 1)

	order, err := svc.Checkout(CheckoutInput{UserID: "user-1", DiscountCode: "DISCOUNT-NOSUCH1"})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.DiscountAmount.String() != "0.00" {
		t.Fatalf("expected zero discount, got %s", order.DiscountAmount.String())
	}
	if order.Total.String() != "10.00" {
		t.Fatalf("expected total 10.00, got %s", order.Total.String())
	}
	if order.DiscountCode != nil {
		t.Fatalf("expected no code recorded, got %v", *order.DiscountCode)
	}
}

func TestCheckoutIgnoresUsedDiscountCode(t *testing.T) {
	svc, db := setupOrderServiceTest(t, 5)
	createTestCartItem(t, db, "user-1", "sku-1", "10.00", 1)
	code := createTestDiscountCode(t, db, "DISCOUNT-SPENT001", 10, false, true)

	order, err := svc.Checkout(CheckoutInput{UserID: "user-1", DiscountCode: code.Code})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.DiscountAmount.String() != "0.00" {
		t.Fatalf("expected zero discount for used code, got %s", order.DiscountAmount.String())
	}
}

func TestCheckoutNthOrderRotatesDiscountCodes(t *testing.T) {
	svc, db := setupOrderServiceTest(t, 2)
	old := createTestDiscountCode(t, db, "DISCOUNT-OLDCODE1", 10, true, false)

	createTestCartItem(t, db, "user-1", "sku-1", "10.00", 1)
	if _, err := svc.Checkout(CheckoutInput{UserID: "user-1"}); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	// 第 1 单不触发轮换
	var reloaded models.DiscountCode
	if err := db.First(&reloaded, old.ID).Error; err != nil {
		t.Fatalf("reload old code failed: %v", err)
	}
	if !reloaded.IsActive {
		t.Fatalf("old code should stay active before the Nth order")
	}

	createTestCartItem(t, db, "user-2", "sku-1", "10.00", 1)
	if _, err := svc.Checkout(CheckoutInput{UserID: "user-2"}); err != nil {
		t.Fatalf("second checkout failed: %v", err)
	}

	if err := db.First(&reloaded, old.ID).Error; err != nil {
		t.Fatalf("reload old code failed: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("old code should be deactivated on the Nth order")
	}

	var active []models.DiscountCode
	if err := db.Where("is_active = ? AND is_used = ?", true, false).Find(&active).Error; err != nil {
		t.Fatalf("load active codes failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected exactly one active code after rotation, got %d", len(active))
	}
	if !discountCodePattern.MatchString(active[0].Code) {
		t.Fatalf("unexpected generated code format: %s", active[0].Code)
	}
	if active[0].DiscountPercent.String() != "10.00" {
		t.Fatalf("expected generated code percent 10.00, got %s", active[0].DiscountPercent.String())
	}
}

func TestCheckoutRotatesEvenWhenCodeConsumedSameOrder(t *testing.T) {
	svc, db := setupOrderServiceTest(t, 1)
	code := createTestDiscountCode(t, db, "DISCOUNT-CONSUMED", 10, true, false)
	createTestCartItem(t, db, "user-1", "sku-1", "10.00", 1)

	order, err := svc.Checkout(CheckoutInput{UserID: "user-1", DiscountCode: code.Code})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.DiscountAmount.String() != "1.00" {
		t.Fatalf("expected discount 1.00, got %s", order.DiscountAmount.String())
	}

	var reloaded models.DiscountCode
	if err := db.First(&reloaded, code.ID).Error; err != nil {
		t.Fatalf("reload consumed code failed: %v", err)
	}
	if !reloaded.IsUsed || reloaded.IsActive {
		t.Fatalf("consumed code should be used and inactive")
	}

	// 每单都是第 N 单：消费了旧码的同一事务内仍生成新码
	var active []models.DiscountCode
	if err := db.Where("is_active = ? AND is_used = ?", true, false).Find(&active).Error; err != nil {
		t.Fatalf("load active codes failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected one freshly minted active code, got %d", len(active))
	}
	if active[0].ID == code.ID {
		t.Fatalf("expected a new code, got the consumed one")
	}
}

func TestCheckoutRollbackLeavesStateUntouched(t *testing.T) {
	svc, db := setupOrderServiceTest(t, 5)
	createTestCartItem(t, db, "user-1", "sku-1", "10.00", 1)
	code := createTestDiscountCode(t, db, "DISCOUNT-KEEPALIV", 10, true, false)

	// 去掉订单项表，迫使事务中途失败
	if err := db.Migrator().DropTable(&models.OrderItem{}); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	_, err := svc.Checkout(CheckoutInput{UserID: "user-1", DiscountCode: code.Code})
	if !errors.Is(err, ErrCheckoutFailed) {
		t.Fatalf("expected ErrCheckoutFailed, got %v", err)
	}

	count, err := repository.NewAppStateRepository(db).GetOrderCount()
	if err != nil {
		t.Fatalf("get order count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected counter rolled back to 0, got %d", count)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no committed orders, got %d", orderCount)
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 1 {
		t.Fatalf("expected cart untouched after rollback, got %d rows", cartCount)
	}

	var reloaded models.DiscountCode
	if err := db.First(&reloaded, code.ID).Error; err != nil {
		t.Fatalf("reload code failed: %v", err)
	}
	if reloaded.IsUsed || !reloaded.IsActive {
		t.Fatalf("expected code untouched after rollback, got used=%v active=%v", reloaded.IsUsed, reloaded.IsActive)
	}
}

func TestCheckoutBlankUserID(t *testing.T) {
	svc, _ := setupOrderServiceTest(t, 5)

	_, err := svc.Checkout(CheckoutInput{UserID: "   "})
	if !errors.Is(err, ErrInvalidCartItem) {
		t.Fatalf("expected ErrInvalidCartItem, got %v", err)
	}
}

func TestGenerateDiscountCodeFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		code := generateDiscountCode()
		if !discountCodePattern.MatchString(code) {
			t.Fatalf("unexpected code format: %s", code)
		}
	}
}

func TestGenerateOrderNoUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		no := generateOrderNo()
		if seen[no] {
			t.Fatalf("duplicate order no generated: %s", no)
		}
		seen[no] = true
	}
}
