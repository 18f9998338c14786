package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teecole/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts login on the admin group. extra runs before
// the handler.
func (h *Handler) RegisterPublicRoutes(admin *gin.RouterGroup, extra ...gin.HandlerFunc) {
	admin.POST("/login", append(extra, h.Login)...)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/verify", h.Verify)
}

// Login handles POST /api/admin/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Username and password are required")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
			return
		}
		response.Internal(c, err, "Login failed")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Verify handles GET /api/admin/verify and echoes the token identity.
func (h *Handler) Verify(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"user": UserPublic{
			ID:       c.GetInt64("user_id"),
			Username: c.GetString("username"),
			Role:     c.GetString("role"),
		},
	})
}
