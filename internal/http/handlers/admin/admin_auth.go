package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/nthcart/internal/http/response"
	"github.com/nthcart/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 管理员登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminProfile 登录响应中的管理员摘要
type AdminProfile struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// Login 管理员登录，签发 JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid login payload", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid username or password", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	response.JSON(c, gin.H{
		"token":     token,
		"expiresAt": expiresAt,
		"admin": AdminProfile{
			ID:          admin.ID,
			Username:    admin.Username,
			LastLoginAt: admin.LastLoginAt,
		},
	})
}
