package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/oysloe/oysloe-backend/config"
	"github.com/oysloe/oysloe-backend/internal/app/controller"
	"github.com/oysloe/oysloe-backend/internal/app/repository"
	"github.com/oysloe/oysloe-backend/internal/app/service"
	"github.com/oysloe/oysloe-backend/internal/db"
	"github.com/oysloe/oysloe-backend/internal/middleware"
	"github.com/oysloe/oysloe-backend/internal/router"
	"github.com/oysloe/oysloe-backend/pkg/logger"
	"github.com/oysloe/oysloe-backend/pkg/metrics"
	"github.com/oysloe/oysloe-backend/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Server.Environment == "development",
	})

	logger.Info("Starting Oysloe Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   cfg.Log.Level,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis (optional): pricing cache + token blacklist
	var (
		cache     service.Cache
		blacklist service.TokenBlacklist
		checker   middleware.TokenChecker
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.Init(context.Background(), &cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		cache, blacklist, checker = redisClient, redisClient, redisClient
	} else {
		logger.Warn("Redis disabled: pricing cache and logout blacklist are off")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	calendar := service.NewCalendar(cfg.Analytics.Location())

	// Initialize repositories
	conn := db.GetDB()
	userRepo := repository.NewUserRepository(conn)
	sellerRepo := repository.NewSellerRepository(conn)
	analyticsRepo := repository.NewAnalyticsRepository(conn)
	planRepo := repository.NewPricingPlanRepository(conn)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		blacklist,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	sellerService := service.NewSellerService(conn, sellerRepo, analyticsRepo, userRepo, calendar, appMetrics)
	analyticsService := service.NewAnalyticsService(analyticsRepo, calendar, appMetrics)
	pricingService := service.NewPricingService(planRepo, cache, cfg.Pricing.CacheTTL)
	dashboardService := service.NewDashboardService(sellerRepo, analyticsRepo, calendar)

	r := router.NewRouter(
		controller.NewAuthController(authService),
		controller.NewSellerController(sellerService),
		controller.NewAnalyticsController(analyticsService),
		controller.NewPricingController(pricingService),
		controller.NewDashboardController(dashboardService),
		middleware.NewAuthMiddleware(cfg.JWT.Secret, checker),
		appMetrics,
		registry,
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r.Setup(),
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
		return
	}
	logger.Info("Server stopped successfully")
}
