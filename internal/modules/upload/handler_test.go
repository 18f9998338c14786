package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()
	dir := t.TempDir()

	r := gin.New()
	NewHandler(NewService(dir, "/uploads", DefaultMaxFileSize, log)).RegisterProtectedRoutes(r.Group("/api/admin"))
	return r, dir
}

func multipartRequest(t *testing.T, path, field string, files map[string][]byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandler_UploadSingle(t *testing.T) {
	r, dir := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/api/admin/upload", "image", map[string][]byte{"room.jpg": jpegBytes(t, 4<<20)}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Data StoredFile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.FileExists(t, filepath.Join(dir, body.Data.Filename))
	assert.Equal(t, "/uploads/"+body.Data.Filename, body.Data.URL)
}

func TestHandler_UploadTooLarge(t *testing.T) {
	r, dir := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/api/admin/upload", "image", map[string][]byte{"huge.jpg": jpegBytes(t, 6<<20)}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_TOO_LARGE")
	assert.Contains(t, w.Body.String(), `"max_size":5242880`)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestHandler_UploadMissingFile(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/api/admin/upload", "other", map[string][]byte{"a.jpg": jpegBytes(t, 0)}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NO_FILE")
}

func TestHandler_UploadBatch(t *testing.T) {
	r, dir := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/api/admin/upload/batch", "images", map[string][]byte{
		"a.jpg": jpegBytes(t, 0),
		"b.png": pngBytes(t),
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Data struct {
			Files []StoredFile `json:"files"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Files, 2)
	entries, _ := os.ReadDir(dir)
	assert.Len(t, entries, 2)
}

func TestHandler_Delete(t *testing.T) {
	r, dir := setupRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gallery-1-abc.jpg"), []byte("x"), 0o644))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/upload/gallery-1-abc.jpg", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoFileExists(t, filepath.Join(dir, "gallery-1-abc.jpg"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/upload/gallery-1-abc.jpg", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_NOT_FOUND")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/upload/..", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
