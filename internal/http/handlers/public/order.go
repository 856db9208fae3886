package public

import (
	"errors"
	"net/http"

	"github.com/nthcart/internal/http/response"
	"github.com/nthcart/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	UserID       string `json:"userId" binding:"required"`
	DiscountCode string `json:"discountCode"`
}

// Checkout 结算购物车
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid checkout payload", err)
		return
	}

	order, err := h.OrderService.Checkout(service.CheckoutInput{
		UserID:       req.UserID,
		DiscountCode: req.DiscountCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			respondError(c, http.StatusNotFound, "Cart is empty", nil)
		case errors.Is(err, service.ErrCartZeroTotal):
			respondError(c, http.StatusBadRequest, "Cart total value is zero", nil)
		case errors.Is(err, service.ErrInvalidCartItem):
			respondError(c, http.StatusBadRequest, "userId is required", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Checkout failed", err)
		}
		return
	}

	response.Created(c, gin.H{
		"message": "Checkout successful!",
		"order":   order,
	})
}
