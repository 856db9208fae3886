package admin

import (
	"net/http"

	"github.com/nthcart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetActiveDiscount 获取当前生效的优惠码，没有时返回 null
func (h *Handler) GetActiveDiscount(c *gin.Context) {
	code, err := h.AdminService.GetActiveDiscountCode()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load active discount code", err)
		return
	}

	// code 为 nil 时序列化为 JSON null
	response.JSON(c, gin.H{"activeDiscount": code})
}
