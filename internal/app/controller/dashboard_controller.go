package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oysloe/oysloe-backend/internal/app/service"
	apperrors "github.com/oysloe/oysloe-backend/internal/errors"
	"github.com/oysloe/oysloe-backend/internal/middleware"
)

type DashboardController struct {
	dashboardService service.DashboardService
}

func NewDashboardController(dashboardService service.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetStats GET /api/v1/dashboard/stats/?period=30days
func (ctrl *DashboardController) GetStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	period := c.Query("period")

	stats, err := ctrl.dashboardService.GetDashboardStats(c.Request.Context(), period)
	if err != nil {
		log.Error("Failed to build dashboard stats", err, map[string]interface{}{
			"period": period,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, stats)
}
