package repository

import (
	"context"

	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/oysloe/oysloe-backend/pkg/logger"
	"gorm.io/gorm"
)

// PricingPlanRepository 요금제 저장소
type PricingPlanRepository interface {
	FindActive(ctx context.Context) ([]model.PricingPlan, error)
	FindAll(ctx context.Context) ([]model.PricingPlan, error)
	FindByName(ctx context.Context, name model.PlanName) (*model.PricingPlan, error)
	ReplaceAll(ctx context.Context, plans []model.PricingPlan) error
	Save(ctx context.Context, plan *model.PricingPlan, exclusivePopular bool) error
}

type pricingPlanRepository struct {
	db *gorm.DB
}

func NewPricingPlanRepository(db *gorm.DB) PricingPlanRepository {
	return &pricingPlanRepository{db: db}
}

func (r *pricingPlanRepository) FindActive(ctx context.Context) ([]model.PricingPlan, error) {
	var plans []model.PricingPlan
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("monthly_price ASC").
		Order("id ASC").
		Find(&plans).Error; err != nil {
		logger.Error("Failed to find active pricing plans", err)
		return nil, err
	}
	return plans, nil
}

func (r *pricingPlanRepository) FindAll(ctx context.Context) ([]model.PricingPlan, error) {
	var plans []model.PricingPlan
	if err := r.db.WithContext(ctx).Order("monthly_price ASC").Order("id ASC").Find(&plans).Error; err != nil {
		logger.Error("Failed to find pricing plans", err)
		return nil, err
	}
	return plans, nil
}

func (r *pricingPlanRepository) FindByName(ctx context.Context, name model.PlanName) (*model.PricingPlan, error) {
	var plan model.PricingPlan
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// ReplaceAll 기존 요금제를 모두 지우고 주어진 목록으로 교체 (단일 트랜잭션)
func (r *pricingPlanRepository) ReplaceAll(ctx context.Context, plans []model.PricingPlan) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.PricingPlan{}).Error; err != nil {
			return err
		}
		if len(plans) == 0 {
			return nil
		}
		return tx.Create(&plans).Error
	})
	if err != nil {
		logger.Error("Failed to replace pricing plans", err, map[string]interface{}{
			"count": len(plans),
		})
		return err
	}

	logger.Info("Pricing plans replaced", map[string]interface{}{
		"count": len(plans),
	})
	return nil
}

// Save 요금제 저장. exclusivePopular면 다른 요금제의 인기 표시를 해제한다.
func (r *pricingPlanRepository) Save(ctx context.Context, plan *model.PricingPlan, exclusivePopular bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if exclusivePopular {
			if err := tx.Model(&model.PricingPlan{}).
				Where("id <> ? AND is_popular = ?", plan.ID, true).
				Update("is_popular", false).Error; err != nil {
				return err
			}
		}
		// Select("*") so false / NULL values are written too
		return tx.Model(plan).Select("*").Omit("id", "created_at").Updates(plan).Error
	})
	if err != nil {
		logger.Error("Failed to save pricing plan", err, map[string]interface{}{
			"name": plan.Name,
		})
		return err
	}
	return nil
}
