package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oysloe/oysloe-backend/internal/app/service"
	apperrors "github.com/oysloe/oysloe-backend/internal/errors"
	"github.com/oysloe/oysloe-backend/internal/middleware"
)

type AnalyticsController struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsController(analyticsService service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// TrackPageview counts one landing page view for today.
// Served both publicly and under the staff analytics group.
// POST /api/v1/track-pageview/
// POST /api/v1/analytics/track_pageview/
func (ctrl *AnalyticsController) TrackPageview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	record, err := ctrl.analyticsService.TrackPageview(c.Request.Context())
	if err != nil {
		log.Error("Failed to track page view", err)
		apperrors.InternalError(c, "Failed to track page view")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Page view tracked successfully",
		"date":       record.Date,
		"page_views": record.PageViews,
	})
}

// TrackSubmission POST /api/v1/analytics/track_submission/
func (ctrl *AnalyticsController) TrackSubmission(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	record, err := ctrl.analyticsService.TrackSubmission(c.Request.Context())
	if err != nil {
		log.Error("Failed to track form submission", err)
		apperrors.InternalError(c, "Failed to track form submission")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Form submission tracked successfully",
		"date":             record.Date,
		"form_submissions": record.FormSubmissions,
	})
}

// GetStats GET /api/v1/analytics/get_stats/?period=7days
func (ctrl *AnalyticsController) GetStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	period := c.Query("period")

	stats, err := ctrl.analyticsService.GetStats(c.Request.Context(), period)
	if err != nil {
		log.Error("Failed to compute analytics stats", err, map[string]interface{}{
			"period": period,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// List GET /api/v1/analytics/
func (ctrl *AnalyticsController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	records, err := ctrl.analyticsService.ListRecords(c.Request.Context())
	if err != nil {
		log.Error("Failed to list analytics records", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analytics": records,
		"count":     len(records),
	})
}
