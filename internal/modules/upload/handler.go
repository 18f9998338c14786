package upload

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"teecole/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(admin *gin.RouterGroup) {
	admin.POST("/upload", h.Upload)
	admin.POST("/upload/batch", h.UploadBatch)
	admin.DELETE("/upload/:filename", h.Delete)
}

// Upload handles POST /api/admin/upload (multipart field "image").
func (h *Handler) Upload(c *gin.Context) {
	form, err := ParseForm(c, h.service.BodyLimit(1))
	if err != nil {
		h.fail(c, err)
		return
	}

	files := form.File["image"]
	if len(files) == 0 {
		h.fail(c, ErrNoFile)
		return
	}

	stored, err := h.service.Save(files[0])
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, stored)
}

// UploadBatch handles POST /api/admin/upload/batch (multipart field "images").
func (h *Handler) UploadBatch(c *gin.Context) {
	form, err := ParseForm(c, h.service.BodyLimit(MaxBatchFiles))
	if err != nil {
		h.fail(c, err)
		return
	}

	stored, err := h.service.SaveAll(form.File["images"])
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"files": stored})
}

// Delete handles DELETE /api/admin/upload/:filename
func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Param("filename"))
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"message": "File deleted successfully"})
	case errors.Is(err, ErrInvalidFilename):
		response.Error(c, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename")
	case errors.Is(err, ErrFileNotFound):
		response.Error(c, http.StatusNotFound, "FILE_NOT_FOUND", "Failed to delete file: file not found")
	default:
		response.Internal(c, err, "Failed to delete file")
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		response.ErrorWithDetails(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the maximum allowed size",
			gin.H{"max_size": h.service.MaxFileSize()})
	case errors.Is(err, ErrInvalidFileType):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only image files are allowed")
	case errors.Is(err, ErrNoFile):
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file uploaded")
	case errors.Is(err, ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "File is empty")
	case errors.Is(err, ErrTooManyFiles):
		response.Error(c, http.StatusBadRequest, "TOO_MANY_FILES", "Too many files in one request")
	default:
		response.Internal(c, err, "Failed to upload file")
	}
}

// ParseForm reads a multipart body of at most limit bytes. Oversized bodies
// yield ErrFileTooLarge and malformed ones ErrNoFile.
func ParseForm(c *gin.Context, limit int64) (*multipart.Form, error) {
	if c.Request.ContentLength > limit {
		return nil, ErrFileTooLarge
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, ErrFileTooLarge
		}
		return nil, ErrNoFile
	}
	return form, nil
}
