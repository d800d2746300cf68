package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/examhub-lk/examhub-api/internal/catalog"
	"github.com/examhub-lk/examhub-api/internal/handler"
	"github.com/examhub-lk/examhub-api/internal/models"
	"github.com/examhub-lk/examhub-api/internal/service"
)

const secret = "router-secret"

type emptyDocuments struct{}

func (emptyDocuments) SearchProcedure(context.Context, models.SearchFilter) ([]models.DocumentSearchRow, error) {
	return []models.DocumentSearchRow{}, nil
}

func (emptyDocuments) FindApproved(context.Context, models.SearchFilter) ([]models.DocumentRow, int, error) {
	return nil, 0, nil
}

type noFailedSearches struct{}

func (noFailedSearches) List(context.Context, models.FailedSearchFilter) ([]models.FailedSearch, int, error) {
	return nil, 0, nil
}

func (noFailedSearches) Delete(context.Context, string) error { return sql.ErrNoRows }

func (noFailedSearches) PruneBefore(context.Context, time.Time) (int64, error) { return 0, nil }

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	cat := catalog.Default()
	search, err := service.NewSearchService(emptyDocuments{}, cat, nil, nil, metrics, nil, zap.NewNop(), service.SearchConfig{RPCEnabled: true})
	require.NoError(t, err)

	return New(Deps{
		APIPrefix:           "/api/v1",
		Logger:              zap.NewNop(),
		Metrics:             metrics,
		Verifier:            service.NewTokenVerifier(service.AuthConfig{Secret: secret}, nil),
		MetricsHandler:      handler.NewMetricsHandler(metrics, nil),
		SearchHandler:       handler.NewSearchHandler(search),
		SubjectHandler:      handler.NewSubjectHandler(cat),
		FailedSearchHandler: handler.NewFailedSearchHandler(service.NewFailedSearchService(noFailedSearches{}, nil, nil)),
	})
}

func adminToken(t *testing.T, role models.UserRole) string {
	t.Helper()
	claims := models.JWTClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestRouterPublicSearch(t *testing.T) {
	engine := newTestEngine(t)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/documents/search?query=nonexistent_xyz_query", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Items   []interface{} `json:"items"`
			Total   int           `json:"total"`
			Page    int           `json:"page"`
			Limit   int           `json:"limit"`
			HasMore bool          `json:"hasMore"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotNil(t, body.Data.Items)
	assert.Empty(t, body.Data.Items)
	assert.Equal(t, 20, body.Data.Limit)
	assert.Equal(t, 1, body.Data.Page)
	assert.Equal(t, "primary", body.Meta["path"])
}

func TestRouterSearchValidation(t *testing.T) {
	engine := newTestEngine(t)
	for _, q := range []string{"limit=0", "limit=51", "offset=-3", "subject=astrology", "medium=hindi", "sortBy=random"} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/documents/search?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Contains(t, rec.Body.String(), `"success":false`, q)
	}
}

func TestRouterAdminRequiresAdminRole(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/failed-searches", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/failed-searches", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, models.RoleUser))
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/failed-searches", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, models.RoleAdmin))
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/failed-searches/unknown", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, models.RoleAdmin))
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterHealthAndMetrics(t *testing.T) {
	engine := newTestEngine(t)
	for _, path := range []string{"/health", "/ready", "/metrics", "/api/v1/subjects"} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
