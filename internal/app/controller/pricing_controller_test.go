package controller

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/oysloe/oysloe-backend/internal/app/repository"
	"github.com/oysloe/oysloe-backend/internal/app/service"
	"github.com/oysloe/oysloe-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type pricingTestEnv struct {
	db         *gorm.DB
	router     *gin.Engine
	adminToken string
	staffToken string
}

func setupPricingControllerTest(t *testing.T) *pricingTestEnv {
	testDB := setupTestDB(t)

	pricingService := service.NewPricingService(repository.NewPricingPlanRepository(testDB), nil, time.Minute)
	require.NoError(t, pricingService.SeedPlans(context.Background(), service.DefaultPlans()))

	ctrl := NewPricingController(pricingService)
	authMiddleware := newAuthMiddleware(nil)

	router := gin.New()
	router.GET("/pricing", ctrl.ListPlans)
	router.PATCH("/pricing/:name", authMiddleware.Authenticate(), authMiddleware.RequireAdmin(), ctrl.UpdatePlan)

	_, adminToken := createStaff(t, testDB, "admin@example.com", model.RoleAdmin)
	_, staffToken := createStaff(t, testDB, "staff@example.com", model.RoleStaff)
	return &pricingTestEnv{db: testDB, router: router, adminToken: adminToken, staffToken: staffToken}
}

func TestPricingController_ListPlans(t *testing.T) {
	env := setupPricingControllerTest(t)

	w := performRequest(env.router, http.MethodGet, "/pricing", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, true, response["success"])
	plans := response["plans"].([]interface{})
	require.Len(t, plans, 3)

	first := plans[0].(map[string]interface{})
	assert.Equal(t, "basic", first["name"])
	assert.Equal(t, float64(567), first["monthly_price"])
	assert.Equal(t, float64(20), first["yearly_discount"])
	assert.Equal(t, true, first["has_cancelled_prices"])
	assert.Equal(t, true, plans[1].(map[string]interface{})["is_popular"])
}

func TestPricingController_ListPlans_Failure(t *testing.T) {
	env := setupPricingControllerTest(t)
	db.CleanupTestDB(env.db)

	w := performRequest(env.router, http.MethodGet, "/pricing", nil, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, false, response["success"])
	assert.NotEmpty(t, response["error"])
}

func TestPricingController_UpdatePlan(t *testing.T) {
	env := setupPricingControllerTest(t)

	w := performRequest(env.router, http.MethodPatch, "/pricing/platinum", `{
		"display_name": "Platinum 12x",
		"monthly_price": "1000",
		"yearly_price": 10000,
		"cancelled_monthly_price": null,
		"is_popular": true
	}`, env.adminToken)

	require.Equal(t, http.StatusOK, w.Code)
	plan := decodeBody(t, w)["plan"].(map[string]interface{})
	assert.Equal(t, "Platinum 12x", plan["display_name"])
	assert.Nil(t, plan["cancelled_monthly_price"])
	assert.Equal(t, float64(14400), plan["cancelled_yearly_price"])
	assert.Equal(t, float64(16.7), plan["yearly_discount"])

	var popular []model.PricingPlan
	require.NoError(t, env.db.Where("is_popular = ?", true).Find(&popular).Error)
	require.Len(t, popular, 1)
	assert.Equal(t, model.PlanPlatinum, popular[0].Name)
}

func TestPricingController_UpdatePlan_Errors(t *testing.T) {
	env := setupPricingControllerTest(t)

	tests := []struct {
		name       string
		path       string
		body       string
		token      string
		wantStatus int
		wantError  string
	}{
		{name: "Staff is not admin", path: "/pricing/basic", body: `{}`, token: env.staffToken, wantStatus: http.StatusForbidden, wantError: "AUTHZ_ADMIN_ONLY"},
		{name: "Unknown plan", path: "/pricing/gold", body: `{}`, token: env.adminToken, wantStatus: http.StatusNotFound, wantError: "PRICING_PLAN_NOT_FOUND"},
		{name: "Negative price", path: "/pricing/basic", body: `{"monthly_price": -1}`, token: env.adminToken, wantStatus: http.StatusBadRequest, wantError: "Validation failed"},
		{name: "Malformed body", path: "/pricing/basic", body: `{"monthly_price": `, token: env.adminToken, wantStatus: http.StatusBadRequest, wantError: "Invalid JSON data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(env.router, http.MethodPatch, tt.path, tt.body, tt.token)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, w)["error"])
		})
	}
}
