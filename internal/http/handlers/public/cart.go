package public

import (
	"errors"
	"net/http"
	"strings"

	"github.com/nthcart/internal/http/response"
	"github.com/nthcart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	UserID   string          `json:"userId" binding:"required"`
	ItemID   string          `json:"itemId" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Quantity int             `json:"quantity" binding:"required"`
}

// AddToCart 添加/累加购物车项
func (h *Handler) AddToCart(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid cart item payload", err)
		return
	}

	item, err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:   req.UserID,
		ItemID:   req.ItemID,
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCartItem) {
			respondError(c, http.StatusBadRequest, "Invalid cart item payload", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to add item to cart", err)
		return
	}

	response.Created(c, gin.H{
		"message": "Item added to cart successfully",
		"item":    item,
	})
}

// GetCart 获取用户购物车
func (h *Handler) GetCart(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		respondError(c, http.StatusBadRequest, "userId is required", nil)
		return
	}

	items, err := h.CartService.ListByUser(userID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCartItem) {
			respondError(c, http.StatusBadRequest, "userId is required", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to load cart", err)
		return
	}

	response.JSON(c, items)
}
