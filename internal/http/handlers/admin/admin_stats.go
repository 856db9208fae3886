package admin

import (
	"net/http"

	"github.com/nthcart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetStats 获取订单与优惠码统计
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.AdminService.GetStatistics()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load statistics", err)
		return
	}

	response.JSON(c, stats)
}
