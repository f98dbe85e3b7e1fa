package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanName 요금제 키
type PlanName string

const (
	PlanBasic    PlanName = "basic"    // Basic 3x
	PlanBusiness PlanName = "business" // Business 4x
	PlanPlatinum PlanName = "platinum" // Platinum 10x
)

// IsValid reports whether n is one of the fixed plan keys.
func (n PlanName) IsValid() bool {
	switch n {
	case PlanBasic, PlanBusiness, PlanPlatinum:
		return true
	}
	return false
}

// PricingPlan 공개 요금제
type PricingPlan struct {
	ID                    uint             `gorm:"primarykey" json:"id"`
	Name                  PlanName         `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	DisplayName           string           `gorm:"type:varchar(100);not null" json:"display_name"`
	Description           string           `gorm:"type:varchar(200);not null" json:"description"`
	MonthlyPrice          decimal.Decimal  `gorm:"type:decimal(10,2);not null;index" json:"monthly_price"`
	YearlyPrice           decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"yearly_price"`
	CancelledMonthlyPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"cancelled_monthly_price"` // struck-through reference price
	CancelledYearlyPrice  *decimal.Decimal `gorm:"type:decimal(10,2)" json:"cancelled_yearly_price"`
	IsPopular             bool             `gorm:"not null" json:"is_popular"`
	IsActive              bool             `gorm:"not null" json:"is_active"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

func (PricingPlan) TableName() string {
	return "pricing_plans"
}

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// YearlyDiscountPercentage (monthly*12 - yearly) / (monthly*12) * 100, 소수점 1자리
func (p *PricingPlan) YearlyDiscountPercentage() float64 {
	if !p.MonthlyPrice.IsPositive() {
		return 0
	}
	yearlyTotal := p.MonthlyPrice.Mul(twelve)
	discount := yearlyTotal.Sub(p.YearlyPrice).Div(yearlyTotal).Mul(hundred).Round(1)
	return discount.InexactFloat64()
}

// HasCancelledPrices reports whether either struck-through price is set.
func (p *PricingPlan) HasCancelledPrices() bool {
	return p.CancelledMonthlyPrice != nil || p.CancelledYearlyPrice != nil
}

// PricingPlanResponse 공개 API 응답
type PricingPlanResponse struct {
	Name                  PlanName `json:"name"`
	DisplayName           string   `json:"display_name"`
	Description           string   `json:"description"`
	MonthlyPrice          float64  `json:"monthly_price"`
	YearlyPrice           float64  `json:"yearly_price"`
	CancelledMonthlyPrice *float64 `json:"cancelled_monthly_price"`
	CancelledYearlyPrice  *float64 `json:"cancelled_yearly_price"`
	IsPopular             bool     `json:"is_popular"`
	IsActive              bool     `json:"is_active"`
	YearlyDiscount        float64  `json:"yearly_discount"`
	HasCancelledPrices    bool     `json:"has_cancelled_prices"`
}

// ToResponse converts the stored plan into its public representation.
func (p *PricingPlan) ToResponse() PricingPlanResponse {
	return PricingPlanResponse{
		Name:                  p.Name,
		DisplayName:           p.DisplayName,
		Description:           p.Description,
		MonthlyPrice:          p.MonthlyPrice.InexactFloat64(),
		YearlyPrice:           p.YearlyPrice.InexactFloat64(),
		CancelledMonthlyPrice: decimalPtrToFloat(p.CancelledMonthlyPrice),
		CancelledYearlyPrice:  decimalPtrToFloat(p.CancelledYearlyPrice),
		IsPopular:             p.IsPopular,
		IsActive:              p.IsActive,
		YearlyDiscount:        p.YearlyDiscountPercentage(),
		HasCancelledPrices:    p.HasCancelledPrices(),
	}
}

func decimalPtrToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
