package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"teecole/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/services", h.List)
	api.GET("/services/:id", h.Get)
}

// List handles GET /api/services
func (h *Handler) List(c *gin.Context) {
	services, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to load services")
		return
	}
	response.Success(c, http.StatusOK, services)
}

// Get handles GET /api/services/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return
	}

	svc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
			return
		}
		response.Internal(c, err, "Failed to load service")
		return
	}
	response.Success(c, http.StatusOK, svc)
}
