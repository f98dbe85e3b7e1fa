package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oysloe/oysloe-backend/config"
	"github.com/oysloe/oysloe-backend/internal/app/controller"
	apperrors "github.com/oysloe/oysloe-backend/internal/errors"
	"github.com/oysloe/oysloe-backend/internal/middleware"
	"github.com/oysloe/oysloe-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	authController      *controller.AuthController
	sellerController    *controller.SellerController
	analyticsController *controller.AnalyticsController
	pricingController   *controller.PricingController
	dashboardController *controller.DashboardController
	authMiddleware      *middleware.AuthMiddleware
	metrics             *metrics.Metrics
	gatherer            prometheus.Gatherer
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	sellerController *controller.SellerController,
	analyticsController *controller.AnalyticsController,
	pricingController *controller.PricingController,
	dashboardController *controller.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		sellerController:    sellerController,
		analyticsController: analyticsController,
		pricingController:   pricingController,
		dashboardController: dashboardController,
		authMiddleware:      authMiddleware,
		metrics:             m,
		gatherer:            gatherer,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)
	apperrors.RegisterValidators()

	router := gin.New()
	// "/sellers" 와 "/sellers/" 둘 다 직접 등록한다
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware(r.metrics))
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Oysloe API is running",
		})
	})
	if r.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	auth := r.authMiddleware.Authenticate()
	staff := r.authMiddleware.RequireStaff()
	admin := r.authMiddleware.RequireAdmin()

	v1 := router.Group("/api/v1")
	{
		// public
		handle(v1, http.MethodPost, "/submit-seller", r.sellerController.Submit)
		handle(v1, http.MethodPost, "/track-pageview", r.analyticsController.TrackPageview)
		handle(v1, http.MethodGet, "/pricing", r.pricingController.ListPlans)
		handle(v1, http.MethodPatch, "/pricing/:name", auth, admin, r.pricingController.UpdatePlan)

		authGroup := v1.Group("/auth")
		{
			handle(authGroup, http.MethodPost, "/login", r.authController.Login)
			handle(authGroup, http.MethodPost, "/refresh", r.authController.RefreshToken)
			handle(authGroup, http.MethodPost, "/logout", auth, staff, r.authController.Logout)
			handle(authGroup, http.MethodGet, "/me", auth, staff, r.authController.GetMe)
		}

		sellers := v1.Group("/sellers", auth, staff)
		{
			handle(sellers, http.MethodGet, "", r.sellerController.List)
			handle(sellers, http.MethodGet, "/export", r.sellerController.Export)
			handle(sellers, http.MethodDelete, "/bulk_delete", r.sellerController.BulkDelete)
			handle(sellers, http.MethodGet, "/:id", r.sellerController.Get)
			handle(sellers, http.MethodPatch, "/:id/update_status", r.sellerController.UpdateStatus)
			handle(sellers, http.MethodPut, "/:id/assignees", r.sellerController.AssignReviewers)
		}

		analytics := v1.Group("/analytics", auth, staff)
		{
			handle(analytics, http.MethodGet, "", r.analyticsController.List)
			handle(analytics, http.MethodPost, "/track_pageview", r.analyticsController.TrackPageview)
			handle(analytics, http.MethodPost, "/track_submission", r.analyticsController.TrackSubmission)
			handle(analytics, http.MethodGet, "/get_stats", r.analyticsController.GetStats)
		}

		dashboard := v1.Group("/dashboard", auth, staff)
		{
			handle(dashboard, http.MethodGet, "/stats", r.dashboardController.GetStats)
		}
	}

	return router
}

// handle registers path with and without a trailing slash.
func handle(g *gin.RouterGroup, method, path string, handlers ...gin.HandlerFunc) {
	g.Handle(method, path, handlers...)
	g.Handle(method, path+"/", handlers...)
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
