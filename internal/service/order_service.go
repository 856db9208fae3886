package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/nthcart/internal/constants"
	"github.com/nthcart/internal/logger"
	"github.com/nthcart/internal/models"
	"github.com/nthcart/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutInput 结算输入
type CheckoutInput struct {
	UserID       string
	DiscountCode string
}

// OrderService 订单服务
type OrderService struct {
	orderRepo       repository.OrderRepository
	cartRepo        repository.CartRepository
	discountRepo    repository.DiscountCodeRepository
	appStateRepo    repository.AppStateRepository
	discountPercent decimal.Decimal
	nthOrder        int64
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, discountRepo repository.DiscountCodeRepository, appStateRepo repository.AppStateRepository, discountPercent float64, nthOrder int64) *OrderService {
	percent := decimal.NewFromFloat(discountPercent)
	if percent.LessThanOrEqual(decimal.Zero) {
		percent = decimal.NewFromInt(constants.DefaultDiscountRate)
	}
	if nthOrder <= 0 {
		nthOrder = constants.DefaultNthOrderCount
	}
	return &OrderService{
		orderRepo:       orderRepo,
		cartRepo:        cartRepo,
		discountRepo:    discountRepo,
		appStateRepo:    appStateRepo,
		discountPercent: percent,
		nthOrder:        nthOrder,
	}
}

// Checkout 结算购物车并创建订单
// 事务内步骤全部成功才提交；每第 N 单失效旧码并生成新优惠码。
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, ErrInvalidCartItem
	}
	providedCode := strings.TrimSpace(input.DiscountCode)
	logger.Infow("checkout_started", "user_id", userID)

	cartItems, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	subtotal := decimal.Zero
	for _, item := range cartItems {
		subtotal = subtotal.Add(item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if subtotal.LessThanOrEqual(decimal.Zero) {
		// 零值购物车无法结算，顺带清空
		logger.Warnw("checkout_zero_subtotal", "user_id", userID)
		if _, clearErr := s.cartRepo.ClearByUser(userID); clearErr != nil {
			logger.Errorw("checkout_zero_subtotal_clear_failed", "user_id", userID, "error", clearErr)
		}
		return nil, ErrCartZeroTotal
	}
	logger.Infow("checkout_subtotal", "user_id", userID, "subtotal", subtotal.StringFixed(2))

	var checkedOut *models.Order
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		discountRepo := s.discountRepo.WithTx(tx)
		appStateRepo := s.appStateRepo.WithTx(tx)

		discountAmount := decimal.Zero
		var appliedCode *models.DiscountCode
		if providedCode != "" {
			activeCode, err := discountRepo.FindActiveByCode(providedCode)
			if err != nil {
				return err
			}
			if activeCode != nil {
				discountAmount = subtotal.
					Mul(activeCode.DiscountPercent.Decimal).
					Div(decimal.NewFromInt(100)).
					Round(2)
				appliedCode = activeCode
				logger.Infow("checkout_discount_applied",
					"user_id", userID,
					"code", activeCode.Code,
					"discount_amount", discountAmount.StringFixed(2),
				)
			} else {
				// 未命中（错码/失效/已用）不是错误，按无码继续
				logger.Warnw("checkout_discount_ignored", "user_id", userID, "code", providedCode)
			}
		}
		total := subtotal.Sub(discountAmount)

		orderNumber, err := appStateRepo.IncrementOrderCount()
		if err != nil {
			return err
		}
		logger.Infow("checkout_order_number", "user_id", userID, "order_number", orderNumber)

		now := time.Now()
		order := &models.Order{
			OrderNo:        generateOrderNo(),
			UserID:         userID,
			Subtotal:       models.NewMoneyFromDecimal(subtotal),
			DiscountAmount: models.NewMoneyFromDecimal(discountAmount),
			Total:          models.NewMoneyFromDecimal(total),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if appliedCode != nil {
			code := appliedCode.Code
			order.DiscountCode = &code
		}

		items := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			items = append(items, models.OrderItem{
				ItemID:    item.ItemID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}

		if appliedCode != nil {
			if err := discountRepo.MarkUsed(appliedCode.ID, order.ID); err != nil {
				return err
			}
		}

		if _, err := cartRepo.ClearByUser(userID); err != nil {
			return err
		}

		// 第 N 单：失效全部旧码并生成新码。
		// 即使本单刚消费了一张码也照常执行。
		if orderNumber%s.nthOrder == 0 {
			if err := discountRepo.DeactivateAll(); err != nil {
				return err
			}
			newCode := &models.DiscountCode{
				Code:            generateDiscountCode(),
				DiscountPercent: models.NewMoneyFromDecimal(s.discountPercent),
				IsActive:        true,
				IsUsed:          false,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := discountRepo.Create(newCode); err != nil {
				return err
			}
			logger.Infow("discount_code_rotated",
				"order_number", orderNumber,
				"code", newCode.Code,
			)
		}

		// 在同一事务句柄内回读完整订单，避免跨事务读取窗口
		full, err := orderRepo.GetByIDWithItems(order.ID)
		if err != nil {
			return err
		}
		if full == nil {
			return ErrOrderFetchFailed
		}
		checkedOut = full
		return nil
	})
	if err != nil {
		logger.Errorw("checkout_transaction_failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	logger.Infow("checkout_succeeded",
		"user_id", userID,
		"order_id", checkedOut.ID,
		"order_no", checkedOut.OrderNo,
		"total", checkedOut.Total.String(),
	)
	return checkedOut, nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%s", constants.OrderNoPrefix, now, randNumeric(6))
}

func generateDiscountCode() string {
	return constants.DiscountCodePrefix + randAlphanumeric(constants.DiscountCodeLength)
}

const alphanumericCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func randAlphanumeric(length int) string {
	var b strings.Builder
	max := big.NewInt(int64(len(alphanumericCharset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b.WriteByte('0')
			continue
		}
		b.WriteByte(alphanumericCharset[n.Int64()])
	}
	return b.String()
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
