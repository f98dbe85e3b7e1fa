package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/oysloe/oysloe-backend/internal/app/repository"
	"github.com/oysloe/oysloe-backend/pkg/logger"
	"github.com/oysloe/oysloe-backend/pkg/redis"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrPricingPlanNotFound = errors.New("pricing plan not found")

// OptionalDecimal distinguishes an absent JSON key from an explicit null.
type OptionalDecimal struct {
	Set   bool
	Value *decimal.Decimal
}

func (o *OptionalDecimal) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Value = &d
	return nil
}

// PlanPatch 관리자 요금제 부분 수정. nil/미설정 필드는 유지.
type PlanPatch struct {
	DisplayName           *string          `json:"display_name"`
	Description           *string          `json:"description"`
	MonthlyPrice          *decimal.Decimal `json:"monthly_price"`
	YearlyPrice           *decimal.Decimal `json:"yearly_price"`
	CancelledMonthlyPrice OptionalDecimal  `json:"cancelled_monthly_price"`
	CancelledYearlyPrice  OptionalDecimal  `json:"cancelled_yearly_price"`
	IsPopular             *bool            `json:"is_popular"`
	IsActive              *bool            `json:"is_active"`
}

type PricingService interface {
	ListActivePlans(ctx context.Context) ([]model.PricingPlanResponse, error)
	SeedPlans(ctx context.Context, plans []model.PricingPlan) error
	UpdatePlan(ctx context.Context, name string, patch PlanPatch) (*model.PricingPlan, error)
}

type pricingService struct {
	planRepo repository.PricingPlanRepository
	cache    Cache
	cacheTTL time.Duration
}

// NewPricingService cache may be nil; listings then always hit the database.
func NewPricingService(planRepo repository.PricingPlanRepository, cache Cache, cacheTTL time.Duration) PricingService {
	return &pricingService{
		planRepo: planRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// DefaultPlans 기본 요금제 3종
func DefaultPlans() []model.PricingPlan {
	price := func(v string) decimal.Decimal { return decimal.RequireFromString(v) }
	ptr := func(v string) *decimal.Decimal { d := price(v); return &d }

	return []model.PricingPlan{
		{
			Name:                  model.PlanBasic,
			DisplayName:           "Basic 3x",
			Description:           "Perfect for new businesses",
			MonthlyPrice:          price("567.00"),
			YearlyPrice:           price("5440.00"),
			CancelledMonthlyPrice: ptr("750.00"),
			CancelledYearlyPrice:  ptr("9000.00"),
			IsActive:              true,
		},
		{
			Name:                  model.PlanBusiness,
			DisplayName:           "Business 4x",
			Description:           "Great for growing businesses",
			MonthlyPrice:          price("567.00"),
			YearlyPrice:           price("5440.00"),
			CancelledMonthlyPrice: ptr("850.00"),
			CancelledYearlyPrice:  ptr("10200.00"),
			IsPopular:             true,
			IsActive:              true,
		},
		{
			Name:                  model.PlanPlatinum,
			DisplayName:           "Platinum 10x",
			Description:           "Best for established enterprises",
			MonthlyPrice:          price("567.00"),
			YearlyPrice:           price("5440.00"),
			CancelledMonthlyPrice: ptr("1200.00"),
			CancelledYearlyPrice:  ptr("14400.00"),
			IsActive:              true,
		},
	}
}

func (s *pricingService) ListActivePlans(ctx context.Context) ([]model.PricingPlanResponse, error) {
	if s.cache != nil {
		var cached []model.PricingPlanResponse
		found, err := s.cache.GetJSON(ctx, redis.PricingActiveKey, &cached)
		if err != nil {
			logger.Warn("Pricing cache read failed, falling back to database", map[string]interface{}{
				"error": err.Error(),
			})
		} else if found {
			return cached, nil
		}
	}

	plans, err := s.planRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]model.PricingPlanResponse, 0, len(plans))
	for i := range plans {
		resp = append(resp, plans[i].ToResponse())
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, redis.PricingActiveKey, resp, s.cacheTTL); err != nil {
			logger.Warn("Failed to cache pricing plans", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return resp, nil
}

// SeedPlans replaces the whole catalog. Destructive.
func (s *pricingService) SeedPlans(ctx context.Context, plans []model.PricingPlan) error {
	if err := validateCatalog(plans); err != nil {
		return err
	}
	if err := s.planRepo.ReplaceAll(ctx, plans); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *pricingService) UpdatePlan(ctx context.Context, name string, patch PlanPatch) (*model.PricingPlan, error) {
	planName := model.PlanName(name)
	if !planName.IsValid() {
		return nil, ErrPricingPlanNotFound
	}

	plan, err := s.planRepo.FindByName(ctx, planName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPricingPlanNotFound
		}
		return nil, err
	}

	applyPlanPatch(plan, patch)
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	exclusive := patch.IsPopular != nil && *patch.IsPopular
	if err := s.planRepo.Save(ctx, plan, exclusive); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	logger.Info("Pricing plan updated", map[string]interface{}{
		"name":       plan.Name,
		"is_popular": plan.IsPopular,
		"is_active":  plan.IsActive,
	})
	return plan, nil
}

func (s *pricingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, redis.PricingActiveKey); err != nil {
		logger.Warn("Failed to invalidate pricing cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func applyPlanPatch(plan *model.PricingPlan, patch PlanPatch) {
	if patch.DisplayName != nil {
		plan.DisplayName = *patch.DisplayName
	}
	if patch.Description != nil {
		plan.Description = *patch.Description
	}
	if patch.MonthlyPrice != nil {
		plan.MonthlyPrice = patch.MonthlyPrice.Round(2)
	}
	if patch.YearlyPrice != nil {
		plan.YearlyPrice = patch.YearlyPrice.Round(2)
	}
	if patch.CancelledMonthlyPrice.Set {
		plan.CancelledMonthlyPrice = roundPtr(patch.CancelledMonthlyPrice.Value)
	}
	if patch.CancelledYearlyPrice.Set {
		plan.CancelledYearlyPrice = roundPtr(patch.CancelledYearlyPrice.Value)
	}
	if patch.IsPopular != nil {
		plan.IsPopular = *patch.IsPopular
	}
	if patch.IsActive != nil {
		plan.IsActive = *patch.IsActive
	}
}

func roundPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := d.Round(2)
	return &r
}

var maxPrice = decimal.RequireFromString("99999999.99") // decimal(10,2)

func validatePlan(plan *model.PricingPlan) error {
	details := map[string]string{}
	if plan.DisplayName == "" {
		details["display_name"] = "This field may not be blank."
	} else if len(plan.DisplayName) > 100 {
		details["display_name"] = "Ensure this field has no more than 100 characters."
	}
	if len(plan.Description) > 200 {
		details["description"] = "Ensure this field has no more than 200 characters."
	}
	checkPrice := func(field string, d *decimal.Decimal) {
		if d == nil {
			return
		}
		if d.IsNegative() {
			details[field] = "Ensure this value is greater than or equal to 0."
		} else if d.GreaterThan(maxPrice) {
			details[field] = "Ensure that there are no more than 10 digits in total."
		}
	}
	checkPrice("monthly_price", &plan.MonthlyPrice)
	checkPrice("yearly_price", &plan.YearlyPrice)
	checkPrice("cancelled_monthly_price", plan.CancelledMonthlyPrice)
	checkPrice("cancelled_yearly_price", plan.CancelledYearlyPrice)

	if len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}

// validateCatalog: 이름 중복 불가, 인기 요금제는 최대 1개
func validateCatalog(plans []model.PricingPlan) error {
	seen := make(map[model.PlanName]bool, len(plans))
	popular := 0
	for i := range plans {
		p := &plans[i]
		if !p.Name.IsValid() {
			return &ValidationError{Details: map[string]string{"name": fmt.Sprintf("%q is not a valid choice.", p.Name)}}
		}
		if seen[p.Name] {
			return &ValidationError{Details: map[string]string{"name": fmt.Sprintf("duplicate plan %q", p.Name)}}
		}
		seen[p.Name] = true
		if p.IsPopular {
			popular++
		}
		if err := validatePlan(p); err != nil {
			return err
		}
	}
	if popular > 1 {
		return &ValidationError{Details: map[string]string{"is_popular": "Only one plan can be marked popular."}}
	}
	return nil
}
