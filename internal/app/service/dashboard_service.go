package service

import (
	"context"

	"github.com/oysloe/oysloe-backend/internal/app/repository"
)

// DashboardStats 스태프 대시보드 요약
type DashboardStats struct {
	Period           Period `json:"period"`
	StartDate        string `json:"start_date"`
	TotalSellers     int64  `json:"total_sellers"`
	PendingSellers   int64  `json:"pending_sellers"`
	ApprovedSellers  int64  `json:"approved_sellers"`
	RejectedSellers  int64  `json:"rejected_sellers"`
	TotalViews       int64  `json:"total_views"`
	TotalSubmissions int64  `json:"total_submissions"`
	TotalDays        int64  `json:"total_days"`
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context, period string) (*DashboardStats, error)
}

type dashboardService struct {
	sellerRepo    repository.SellerRepository
	analyticsRepo repository.AnalyticsRepository
	calendar      *Calendar
}

func NewDashboardService(
	sellerRepo repository.SellerRepository,
	analyticsRepo repository.AnalyticsRepository,
	calendar *Calendar,
) DashboardService {
	return &dashboardService{
		sellerRepo:    sellerRepo,
		analyticsRepo: analyticsRepo,
		calendar:      calendar,
	}
}

// GetDashboardStats seller counts are all-time; analytics totals cover the period.
func (s *dashboardService) GetDashboardStats(ctx context.Context, rawPeriod string) (*DashboardStats, error) {
	period := NormalizePeriod(rawPeriod)
	start := formatDate(period.StartDate(s.calendar.Today()))

	counts, err := s.sellerRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.analyticsRepo.SumSince(ctx, start)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Period:           period,
		StartDate:        start,
		TotalSellers:     counts.Total,
		PendingSellers:   counts.Pending,
		ApprovedSellers:  counts.Approved,
		RejectedSellers:  counts.Rejected,
		TotalViews:       totals.TotalViews,
		TotalSubmissions: totals.TotalSubmissions,
		TotalDays:        totals.TotalDays,
	}, nil
}
