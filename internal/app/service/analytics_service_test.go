package service

import (
	"context"
	"testing"
	"time"

	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/oysloe/oysloe-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)

func setupAnalyticsServiceTest(t *testing.T) (*gorm.DB, AnalyticsService, *countingMetrics) {
	testDB := setupTestDB(t)
	metrics := newCountingMetrics()
	svc := NewAnalyticsService(
		repository.NewAnalyticsRepository(testDB),
		fixedCalendar(testNow, time.UTC),
		metrics,
	)
	return testDB, svc, metrics
}

func TestNormalizePeriod(t *testing.T) {
	tests := []struct {
		raw  string
		want Period
		days int
	}{
		{raw: "today", want: PeriodToday, days: 0},
		{raw: "7days", want: Period7Days, days: 7},
		{raw: "30days", want: Period30Days, days: 30},
		{raw: "90days", want: Period90Days, days: 90},
		{raw: "", want: Period7Days, days: 7},
		{raw: "year", want: Period7Days, days: 7},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p := NormalizePeriod(tt.raw)
			assert.Equal(t, tt.want, p)
			assert.Equal(t, tt.days, p.Days())
		})
	}
}

func TestCalendar_TodayUsesLocation(t *testing.T) {
	accra, err := time.LoadLocation("Africa/Accra")
	require.NoError(t, err)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	late := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-10", formatDate(fixedCalendar(late, accra).Today()))
	assert.Equal(t, "2024-03-11", formatDate(fixedCalendar(late, tokyo).Today()))
}

func TestAnalyticsService_TrackPageview(t *testing.T) {
	testDB, svc, metrics := setupAnalyticsServiceTest(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		row, err := svc.TrackPageview(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-10", row.Date)
		assert.Equal(t, int64(i), row.PageViews)
	}
	assert.Equal(t, 3, metrics.pageviews)

	row, err := svc.TrackSubmission(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), row.PageViews)
	assert.Equal(t, int64(1), row.FormSubmissions)

	row, err = svc.TrackPageviewOn(ctx, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", row.Date)
	assert.Equal(t, int64(1), row.PageViews)

	var count int64
	testDB.Model(&model.Analytics{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestAnalyticsService_GetStatsEmpty(t *testing.T) {
	_, svc, _ := setupAnalyticsServiceTest(t)

	stats, err := svc.GetStats(context.Background(), "today")
	require.NoError(t, err)
	assert.Equal(t, PeriodToday, stats.Period)
	assert.Equal(t, "2024-03-10", stats.StartDate)
	assert.Equal(t, "2024-03-10", stats.EndDate)
	assert.Zero(t, stats.TotalViews)
	assert.Zero(t, stats.TotalSubmissions)
	assert.Zero(t, stats.TotalDays)
	assert.Zero(t, stats.AvgViewsPerDay)
	assert.Zero(t, stats.ConversionRate)
	assert.NotNil(t, stats.DailyData)
	assert.Empty(t, stats.DailyData)
}

func TestAnalyticsService_GetStats(t *testing.T) {
	testDB, svc, _ := setupAnalyticsServiceTest(t)

	rows := []model.Analytics{
		{Date: "2024-02-01", PageViews: 1000, FormSubmissions: 100}, // outside every short window
		{Date: "2024-03-03", PageViews: 10, FormSubmissions: 1},     // start of 7days window (inclusive)
		{Date: "2024-03-05", PageViews: 20, FormSubmissions: 0},
		{Date: "2024-03-10", PageViews: 3, FormSubmissions: 1},
	}
	require.NoError(t, testDB.Create(&rows).Error)

	stats, err := svc.GetStats(context.Background(), "bogus")
	require.NoError(t, err)

	assert.Equal(t, Period7Days, stats.Period)
	assert.Equal(t, "2024-03-03", stats.StartDate)
	assert.Equal(t, "2024-03-10", stats.EndDate)
	assert.Equal(t, int64(33), stats.TotalViews)
	assert.Equal(t, int64(2), stats.TotalSubmissions)
	assert.Equal(t, int64(3), stats.TotalDays)
	assert.Equal(t, 11.0, stats.AvgViewsPerDay)
	assert.Equal(t, 0.67, stats.AvgSubmissionsPerDay)
	assert.Equal(t, 6.06, stats.ConversionRate)

	require.Len(t, stats.DailyData, 3)
	assert.Equal(t, "2024-03-03", stats.DailyData[0].Date)
	assert.Equal(t, "2024-03-10", stats.DailyData[2].Date)

	stats, err = svc.GetStats(context.Background(), "90days")
	require.NoError(t, err)
	assert.Equal(t, int64(1033), stats.TotalViews)
	assert.Equal(t, int64(4), stats.TotalDays)
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, 0.0, conversionRate(0, 0))
	assert.Equal(t, 300.0, conversionRate(3, 0))
	assert.Equal(t, 33.33, conversionRate(1, 3))
	assert.Equal(t, 0.0, perDay(10, 0))
	assert.Equal(t, 3.33, perDay(10, 3))
}
