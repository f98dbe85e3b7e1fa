package service

import (
	"context"
	"time"

	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/oysloe/oysloe-backend/internal/app/repository"
	"github.com/oysloe/oysloe-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// AnalyticsStats get_stats 응답
type AnalyticsStats struct {
	Period               Period                 `json:"period"`
	StartDate            string                 `json:"start_date"`
	EndDate              string                 `json:"end_date"`
	TotalViews           int64                  `json:"total_views"`
	TotalSubmissions     int64                  `json:"total_submissions"`
	TotalDays            int64                  `json:"total_days"`
	AvgViewsPerDay       float64                `json:"avg_views_per_day"`
	AvgSubmissionsPerDay float64                `json:"avg_submissions_per_day"`
	ConversionRate       float64                `json:"conversion_rate"`
	DailyData            []model.DailyAnalytics `json:"daily_data"`
}

type AnalyticsService interface {
	TrackPageview(ctx context.Context) (*model.Analytics, error)
	TrackPageviewOn(ctx context.Context, date time.Time) (*model.Analytics, error)
	TrackSubmission(ctx context.Context) (*model.Analytics, error)
	GetStats(ctx context.Context, period string) (*AnalyticsStats, error)
	ListRecords(ctx context.Context) ([]model.Analytics, error)
}

type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	calendar      *Calendar
	metrics       FunnelMetrics
}

func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	calendar *Calendar,
	metrics FunnelMetrics,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		calendar:      calendar,
		metrics:       metricsOrNoop(metrics),
	}
}

func (s *analyticsService) TrackPageview(ctx context.Context) (*model.Analytics, error) {
	return s.TrackPageviewOn(ctx, s.calendar.Today())
}

func (s *analyticsService) TrackPageviewOn(ctx context.Context, date time.Time) (*model.Analytics, error) {
	row, err := s.analyticsRepo.Increment(ctx, formatDate(date), model.CounterPageViews)
	if err != nil {
		return nil, err
	}
	s.metrics.IncPageview()
	return row, nil
}

func (s *analyticsService) TrackSubmission(ctx context.Context) (*model.Analytics, error) {
	row, err := s.analyticsRepo.Increment(ctx, formatDate(s.calendar.Today()), model.CounterFormSubmissions)
	if err != nil {
		return nil, err
	}
	s.metrics.IncSubmission()
	return row, nil
}

func (s *analyticsService) GetStats(ctx context.Context, rawPeriod string) (*AnalyticsStats, error) {
	period := NormalizePeriod(rawPeriod)
	today := s.calendar.Today()
	start := formatDate(period.StartDate(today))

	totals, err := s.analyticsRepo.SumSince(ctx, start)
	if err != nil {
		return nil, err
	}
	daily, err := s.analyticsRepo.FindDailySince(ctx, start)
	if err != nil {
		return nil, err
	}

	stats := &AnalyticsStats{
		Period:               period,
		StartDate:            start,
		EndDate:              formatDate(today),
		TotalViews:           totals.TotalViews,
		TotalSubmissions:     totals.TotalSubmissions,
		TotalDays:            totals.TotalDays,
		AvgViewsPerDay:       perDay(totals.TotalViews, totals.TotalDays),
		AvgSubmissionsPerDay: perDay(totals.TotalSubmissions, totals.TotalDays),
		ConversionRate:       conversionRate(totals.TotalSubmissions, totals.TotalViews),
		DailyData:            daily,
	}

	logger.Debug("Analytics stats computed", map[string]interface{}{
		"period":      period,
		"start_date":  start,
		"total_views": stats.TotalViews,
		"total_days":  stats.TotalDays,
	})
	return stats, nil
}

func (s *analyticsService) ListRecords(ctx context.Context) ([]model.Analytics, error) {
	return s.analyticsRepo.FindAll(ctx)
}

// perDay total / days, 소수점 2자리. days가 0이면 0.
func perDay(total, days int64) float64 {
	if days == 0 {
		return 0
	}
	return decimal.NewFromInt(total).Div(decimal.NewFromInt(days)).Round(2).InexactFloat64()
}

// conversionRate submissions / max(views, 1) * 100, 소수점 2자리
func conversionRate(submissions, views int64) float64 {
	if views < 1 {
		views = 1
	}
	return decimal.NewFromInt(submissions).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(views)).
		Round(2).
		InexactFloat64()
}
