package router

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oysloe/oysloe-backend/config"
	"github.com/oysloe/oysloe-backend/internal/app/controller"
	"github.com/oysloe/oysloe-backend/internal/app/repository"
	"github.com/oysloe/oysloe-backend/internal/app/service"
	"github.com/oysloe/oysloe-backend/internal/db"
	"github.com/oysloe/oysloe-backend/internal/middleware"
	"github.com/oysloe/oysloe-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouterTest(t *testing.T) *gin.Engine {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	calendar := service.NewCalendar(nil)

	userRepo := repository.NewUserRepository(testDB)
	sellerRepo := repository.NewSellerRepository(testDB)
	analyticsRepo := repository.NewAnalyticsRepository(testDB)
	planRepo := repository.NewPricingPlanRepository(testDB)

	authService := service.NewAuthService(userRepo, nil, "router-secret", time.Minute, time.Hour)
	sellerService := service.NewSellerService(testDB, sellerRepo, analyticsRepo, userRepo, calendar, m)
	analyticsService := service.NewAnalyticsService(analyticsRepo, calendar, m)
	pricingService := service.NewPricingService(planRepo, nil, time.Minute)
	dashboardService := service.NewDashboardService(sellerRepo, analyticsRepo, calendar)

	r := NewRouter(
		controller.NewAuthController(authService),
		controller.NewSellerController(sellerService),
		controller.NewAnalyticsController(analyticsService),
		controller.NewPricingController(pricingService),
		controller.NewDashboardController(dashboardService),
		middleware.NewAuthMiddleware("router-secret", nil),
		m,
		reg,
		cfg,
	)
	return r.Setup()
}

func serve(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	engine := setupRouterTest(t)

	w := serve(engine, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRouter_TrailingSlashOptional(t *testing.T) {
	engine := setupRouterTest(t)

	for _, path := range []string{"/api/v1/pricing", "/api/v1/pricing/"} {
		w := serve(engine, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	for i, path := range []string{"/api/v1/track-pageview", "/api/v1/track-pageview/"} {
		w := serve(engine, http.MethodPost, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), fmt.Sprintf(`"page_views":%d`, i+1))
	}
}

func TestRouter_StaffRoutesRequireAuth(t *testing.T) {
	engine := setupRouterTest(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/sellers/"},
		{http.MethodGet, "/api/v1/sellers/1/"},
		{http.MethodGet, "/api/v1/sellers/export/"},
		{http.MethodPatch, "/api/v1/sellers/1/update_status/"},
		{http.MethodPut, "/api/v1/sellers/1/assignees/"},
		{http.MethodDelete, "/api/v1/sellers/bulk_delete/"},
		{http.MethodGet, "/api/v1/analytics/"},
		{http.MethodPost, "/api/v1/analytics/track_pageview/"},
		{http.MethodPost, "/api/v1/analytics/track_submission/"},
		{http.MethodGet, "/api/v1/analytics/get_stats/"},
		{http.MethodGet, "/api/v1/dashboard/stats/"},
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodPatch, "/api/v1/pricing/basic/"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := serve(engine, rt.method, rt.path, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	engine := setupRouterTest(t)

	w := serve(engine, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	engine := setupRouterTest(t)

	serve(engine, http.MethodGet, "/api/v1/pricing/", "")
	w := serve(engine, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `oysloe_http_requests_total{method="GET",route="/api/v1/pricing/",status="200"} 1`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	engine := setupRouterTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/submit-seller/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
