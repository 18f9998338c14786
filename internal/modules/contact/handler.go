package contact

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

// RegisterPublicRoutes mounts the contact form. extra runs before the
// handler, e.g. a rate limiter.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup, extra ...gin.HandlerFunc) {
	api.POST("/contact", append(extra, h.Submit)...)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/contact-submissions", h.List)
}

// Submit handles POST /api/contact
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please provide all required fields", verr.Fields)
			return
		}
		response.Internal(c, err, "Failed to submit contact form")
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// List handles GET /api/contact-submissions
func (h *Handler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to fetch submissions")
		return
	}
	response.Success(c, http.StatusOK, rows)
}
