package service

import (
	"strings"
	"time"

	"github.com/nthcart/internal/logger"
	"github.com/nthcart/internal/models"
	"github.com/nthcart/internal/repository"

	"github.com/shopspring/decimal"
)

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	UserID   string
	ItemID   string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// CartService 购物车服务
type CartService struct {
	cartRepo repository.CartRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// AddItem 添加或累加购物车项
func (s *CartService) AddItem(input AddCartItemInput) (*models.CartItem, error) {
	userID := strings.TrimSpace(input.UserID)
	itemID := strings.TrimSpace(input.ItemID)
	name := strings.TrimSpace(input.Name)
	if userID == "" || itemID == "" || name == "" {
		return nil, ErrInvalidCartItem
	}
	if input.Quantity < 1 {
		return nil, ErrInvalidCartItem
	}
	// 价格必须为正且最多两位小数
	if input.Price.LessThanOrEqual(decimal.Zero) || !input.Price.Equal(input.Price.Round(2)) {
		return nil, ErrInvalidCartItem
	}

	now := time.Now()
	item := &models.CartItem{
		UserID:    userID,
		ItemID:    itemID,
		Name:      name,
		Price:     models.NewMoneyFromDecimal(input.Price),
		Quantity:  input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.Upsert(item); err != nil {
		return nil, err
	}
	logger.Infow("cart_item_upserted",
		"user_id", userID,
		"item_id", itemID,
		"quantity", item.Quantity,
	)
	return item, nil
}

// ListByUser 获取用户购物车（按加入时间升序）
func (s *CartService) ListByUser(userID string) ([]models.CartItem, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidCartItem
	}
	return s.cartRepo.ListByUser(strings.TrimSpace(userID))
}

// ClearByUser 清空用户购物车，返回删除行数
func (s *CartService) ClearByUser(userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, ErrInvalidCartItem
	}
	count, err := s.cartRepo.ClearByUser(strings.TrimSpace(userID))
	if err != nil {
		return 0, err
	}
	logger.Infow("cart_cleared", "user_id", userID, "removed", count)
	return count, nil
}
