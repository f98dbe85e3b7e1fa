package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oysloe/oysloe-backend/internal/app/service"
	apperrors "github.com/oysloe/oysloe-backend/internal/errors"
	"github.com/oysloe/oysloe-backend/internal/middleware"
)

type PricingController struct {
	pricingService service.PricingService
}

func NewPricingController(pricingService service.PricingService) *PricingController {
	return &PricingController{
		pricingService: pricingService,
	}
}

// ListPlans returns the active pricing plans, cheapest first
// GET /api/v1/pricing/
func (ctrl *PricingController) ListPlans(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	plans, err := ctrl.pricingService.ListActivePlans(c.Request.Context())
	if err != nil {
		log.Error("Failed to list pricing plans", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"plans":   plans,
	})
}

// UpdatePlan partially updates one plan (admin)
// PATCH /api/v1/pricing/:name/
func (ctrl *PricingController) UpdatePlan(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	var patch service.PlanPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.Warn("Invalid pricing plan update request", map[string]interface{}{
			"plan":  name,
			"error": err.Error(),
		})
		apperrors.RespondWithBindError(c, err)
		return
	}

	plan, err := ctrl.pricingService.UpdatePlan(c.Request.Context(), name, patch)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrPricingPlanNotFound):
			apperrors.NotFound(c, apperrors.PricingPlanNotFound, "Pricing plan not found")
		case errors.As(err, &verr):
			apperrors.RespondWithValidationError(c, verr.Details)
		default:
			log.Error("Failed to update pricing plan", err, map[string]interface{}{
				"plan": name,
			})
			apperrors.ParseAndRespond(c, err, "pricing plan")
		}
		return
	}

	userID, _ := middleware.GetUserID(c)
	log.Info("Pricing plan updated", map[string]interface{}{
		"plan":    plan.Name,
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Pricing plan updated successfully",
		"plan":    plan.ToResponse(),
	})
}
