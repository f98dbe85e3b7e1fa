package db

import (
	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/oysloe/oysloe-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, parents before children.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.PricingPlan{},
		&model.Seller{},
		&model.SellerAssignment{},
		&model.Analytics{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB runs the schema migration against the given connection.
func MigrateDB(conn *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
