package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/oysloe/oysloe-backend/config"
	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/oysloe/oysloe-backend/internal/app/repository"
	"github.com/oysloe/oysloe-backend/internal/app/service"
	"github.com/oysloe/oysloe-backend/internal/db"
	"github.com/oysloe/oysloe-backend/pkg/logger"
	"github.com/oysloe/oysloe-backend/pkg/redis"
	"github.com/oysloe/oysloe-backend/pkg/spreadsheet"
)

const usage = `Usage:
  seed pricing [plans.xlsx]                    replace all pricing plans (defaults when no file)
  seed staff <email> <password> <name> [role]  create a staff account (role: staff|admin)`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Initialize(logger.Config{Level: cfg.Log.Level, Format: "console", EnableColor: true})

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "pricing":
		err = seedPricing(ctx, cfg, os.Args[2:])
	case "staff":
		err = seedStaff(ctx, cfg, os.Args[2:])
	default:
		log.Fatal(usage)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func seedPricing(ctx context.Context, cfg *config.Config, args []string) error {
	plans := service.DefaultPlans()
	if len(args) > 0 {
		fmt.Printf("Reading XLSX file: %s\n", args[0])
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open XLSX file: %w", err)
		}
		defer f.Close()

		plans, err = spreadsheet.ReadPricingPlans(f)
		if err != nil {
			return fmt.Errorf("failed to read XLSX: %w", err)
		}
	}

	fmt.Printf("Plans to import: %d\n", len(plans))
	for _, p := range plans {
		fmt.Printf("  %-10s %-15s monthly=%s yearly=%s popular=%t\n", p.Name, p.DisplayName, p.MonthlyPrice, p.YearlyPrice, p.IsPopular)
	}

	// 기존 요금제는 모두 삭제된다
	fmt.Print("This replaces every existing plan. Proceed? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return nil
	}

	cache, closeCache, err := pricingCache(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	defer closeCache()

	pricingService := service.NewPricingService(repository.NewPricingPlanRepository(db.GetDB()), cache, cfg.Pricing.CacheTTL)
	if err := pricingService.SeedPlans(ctx, plans); err != nil {
		return fmt.Errorf("failed to seed pricing plans: %w", err)
	}

	fmt.Println("Pricing plans seeded successfully!")
	return nil
}

// pricingCache connects to Redis when it is enabled so a reseed drops the
// cached public listing. The returned cache is nil when Redis is disabled.
func pricingCache(ctx context.Context, cfg *config.RedisConfig) (service.Cache, func(), error) {
	if !cfg.Enabled {
		return nil, func() {}, nil
	}

	client, err := redis.Init(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("redis is enabled but unreachable, pricing cache cannot be invalidated: %w", err)
	}
	return client, func() {
		if err := client.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}, nil
}

func seedStaff(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%s", usage)
	}
	role := model.RoleStaff
	if len(args) > 3 {
		role = model.UserRole(args[3])
	}

	authService := service.NewAuthService(
		repository.NewUserRepository(db.GetDB()),
		nil,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	user, err := authService.CreateStaff(ctx, args[0], args[1], args[2], role)
	if err != nil {
		return fmt.Errorf("failed to create staff user: %w", err)
	}

	fmt.Printf("Created %s user %s (id=%d)\n", user.Role, user.Email, user.ID)
	return nil
}
