package repository

import (
	"context"
	"fmt"

	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/oysloe/oysloe-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsRepository 일별 카운터 저장소
type AnalyticsRepository interface {
	WithTx(tx *gorm.DB) AnalyticsRepository
	Increment(ctx context.Context, date string, counter model.AnalyticsCounter) (*model.Analytics, error)
	FindByDate(ctx context.Context, date string) (*model.Analytics, error)
	FindAll(ctx context.Context) ([]model.Analytics, error)
	SumSince(ctx context.Context, startDate string) (*model.AnalyticsTotals, error)
	FindDailySince(ctx context.Context, startDate string) ([]model.DailyAnalytics, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) WithTx(tx *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: tx}
}

// Increment bumps one counter of the given day by one. The row is created on
// first use; INSERT ... ON CONFLICT keeps concurrent first events from
// producing duplicate dates or lost increments.
func (r *analyticsRepository) Increment(ctx context.Context, date string, counter model.AnalyticsCounter) (*model.Analytics, error) {
	row := model.Analytics{Date: date}
	switch counter {
	case model.CounterPageViews:
		row.PageViews = 1
	case model.CounterFormSubmissions:
		row.FormSubmissions = 1
	default:
		return nil, fmt.Errorf("unknown analytics counter %q", counter)
	}

	column := string(counter)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				column: gorm.Expr(fmt.Sprintf("%s.%s + ?", model.Analytics{}.TableName(), column), 1),
			}),
		}).Create(&row).Error; err != nil {
			return err
		}
		stored, err := r.WithTx(tx).FindByDate(ctx, date)
		if err != nil {
			return err
		}
		row = *stored
		return nil
	})
	if err != nil {
		logger.Error("Failed to increment analytics counter", err, map[string]interface{}{
			"date":    date,
			"counter": column,
		})
		return nil, err
	}

	logger.Debug("Analytics counter incremented", map[string]interface{}{
		"date":             row.Date,
		"page_views":       row.PageViews,
		"form_submissions": row.FormSubmissions,
	})
	return &row, nil
}

func (r *analyticsRepository) FindByDate(ctx context.Context, date string) (*model.Analytics, error) {
	var row model.Analytics
	if err := r.db.WithContext(ctx).Where("date = ?", date).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *analyticsRepository) FindAll(ctx context.Context) ([]model.Analytics, error) {
	var rows []model.Analytics
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&rows).Error; err != nil {
		logger.Error("Failed to list analytics", err)
		return nil, err
	}
	return rows, nil
}

// SumSince 시작일(포함) 이후 합계. 레코드가 없으면 0.
func (r *analyticsRepository) SumSince(ctx context.Context, startDate string) (*model.AnalyticsTotals, error) {
	var totals model.AnalyticsTotals
	if err := r.db.WithContext(ctx).
		Model(&model.Analytics{}).
		Select("CAST(COALESCE(SUM(page_views), 0) AS BIGINT) AS total_views, "+
			"CAST(COALESCE(SUM(form_submissions), 0) AS BIGINT) AS total_submissions, "+
			"COUNT(DISTINCT date) AS total_days").
		Where("date >= ?", startDate).
		Scan(&totals).Error; err != nil {
		logger.Error("Failed to aggregate analytics", err, map[string]interface{}{
			"start_date": startDate,
		})
		return nil, err
	}
	return &totals, nil
}

func (r *analyticsRepository) FindDailySince(ctx context.Context, startDate string) ([]model.DailyAnalytics, error) {
	daily := make([]model.DailyAnalytics, 0)
	if err := r.db.WithContext(ctx).
		Model(&model.Analytics{}).
		Select("date, page_views, form_submissions").
		Where("date >= ?", startDate).
		Order("date ASC").
		Scan(&daily).Error; err != nil {
		logger.Error("Failed to load daily analytics", err, map[string]interface{}{
			"start_date": startDate,
		})
		return nil, err
	}
	return daily, nil
}
