package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/kopi-api/models"
	"github.com/Kariqs/kopi-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", RequireAuth(testSecret), func(ctx *gin.Context) {
		claims := ctx.MustGet("user").(*utils.Claims)
		ctx.String(http.StatusOK, claims.Email)
	})
	router.GET("/admin", RequireAuth(testSecret), RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	return router
}

func token(t *testing.T, role string) string {
	tok, err := utils.GenerateToken(1, "u@example.com", role, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func serve(router *gin.Engine, target, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	router := newRouter()

	assert.Equal(t, http.StatusUnauthorized, serve(router, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, "/me", "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, "/me", "Basic abc").Code)

	rec := serve(router, "/me", "Bearer "+token(t, models.RoleCustomer))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u@example.com", rec.Body.String())

	rec = serve(router, "/me?token="+token(t, models.RoleCustomer), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	router := newRouter()

	assert.Equal(t, http.StatusForbidden, serve(router, "/admin", "Bearer "+token(t, models.RoleCustomer)).Code)
	assert.Equal(t, http.StatusNoContent, serve(router, "/admin", "Bearer "+token(t, models.RoleAdmin)).Code)
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	router := gin.New()
	router.Use(metrics.Middleware())
	router.GET("/products/:id", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	router.GET("/metrics", MetricsHandler(registry))

	serve(router, "/products/1", "")
	serve(router, "/products/2", "")

	rec := serve(router, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `kopi_api_http_requests_total{method="GET",route="/products/:id",status="200"} 2`), body)
}
