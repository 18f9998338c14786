package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"teecole/internal/domain"
)

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func setupRouter(repo ServiceRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(repo)).RegisterRoutes(r.Group("/api"))
	return r
}

func TestService_GetMapsNotFound(t *testing.T) {
	repo := new(mockServiceRepo)
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(repo).Get(context.Background(), 9)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	repo.AssertExpectations(t)
}

func TestService_ListEmptyIsNotNil(t *testing.T) {
	repo := new(mockServiceRepo)
	repo.On("List", mock.Anything).Return(nil, nil)

	services, err := NewService(repo).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, services)
}

func TestHandler_GetService(t *testing.T) {
	repo := new(mockServiceRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Service{ID: 1, Title: "Cleaning Services", Features: []string{"a", "b"}}, nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(nil, gorm.ErrRecordNotFound)
	repo.On("GetByID", mock.Anything, int64(3)).Return(nil, errors.New("disk I/O error"))
	r := setupRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services/1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool           `json:"success"`
		Data    domain.Service `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []string{"a", "b"}, []string(body.Data.Features))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services/2", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "SERVICE_NOT_FOUND")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services/3", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk I/O")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
