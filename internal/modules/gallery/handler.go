package gallery

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"teecole/internal/modules/upload"
	"teecole/internal/pkg/response"
	"teecole/internal/repository"
)

type Handler struct {
	service *Service
	files   ImageStore
}

func NewHandler(service *Service, files ImageStore) *Handler {
	return &Handler{service: service, files: files}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/gallery", h.List)
	api.GET("/gallery/:id", h.Get)
}

func (h *Handler) RegisterProtectedRoutes(admin *gin.RouterGroup) {
	admin.POST("/gallery", h.Create)
	admin.PUT("/gallery/:id", h.Update)
	admin.DELETE("/gallery/:id", h.Delete)
}

// List handles GET /api/gallery?category=&featured=
func (h *Handler) List(c *gin.Context) {
	var f repository.GalleryFilter
	f.Category = c.Query("category")
	if v, ok := c.GetQuery("featured"); ok && v != "" {
		featured := v == "true" || v == "1"
		f.Featured = &featured
	}

	items, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Internal(c, err, "Failed to fetch gallery")
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Get handles GET /api/gallery/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to fetch gallery item")
		return
	}
	response.Success(c, http.StatusOK, item)
}

// Create handles POST /api/admin/gallery with either a JSON body or a
// multipart form carrying files under "images".
func (h *Handler) Create(c *gin.Context) {
	var (
		id  int64
		err error
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, perr := upload.ParseForm(c, h.files.BodyLimit(upload.MaxBatchFiles))
		if perr != nil {
			h.fail(c, perr, "Failed to add gallery item")
			return
		}
		id, err = h.service.CreateWithUploads(c.Request.Context(), formRequest(form.Value), form.File["images"])
	} else {
		var req CreateRequest
		if berr := c.ShouldBindJSON(&req); berr != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
			return
		}
		id, err = h.service.Create(c.Request.Context(), req)
	}

	if err != nil {
		h.fail(c, err, "Failed to add gallery item")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":      id,
		"message": "Gallery item added successfully",
	})
}

// Update handles PUT /api/admin/gallery/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		h.fail(c, err, "Failed to update gallery item")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Gallery item updated successfully"})
}

// Delete handles DELETE /api/admin/gallery/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete gallery item")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Gallery item deleted successfully"})
}

func (h *Handler) fail(c *gin.Context, err error, message string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid gallery item", verr.Fields)
	case errors.Is(err, ErrItemNotFound):
		response.Error(c, http.StatusNotFound, "GALLERY_ITEM_NOT_FOUND", "Gallery item not found")
	case upload.IsRejected(err):
		response.Error(c, http.StatusBadRequest, "INVALID_UPLOAD", err.Error())
	default:
		response.Internal(c, err, message)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid gallery item ID")
		return 0, false
	}
	return id, true
}

func formRequest(values map[string][]string) CreateRequest {
	get := func(key string) string {
		if v := values[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	featured, _ := ParseBool(get("is_featured"))
	return CreateRequest{
		Title:       get("title"),
		Description: get("description"),
		ImageURL:    get("image_url"),
		Category:    get("category"),
		ProjectDate: get("project_date"),
		IsFeatured:  FlexBool(featured),
	}
}
