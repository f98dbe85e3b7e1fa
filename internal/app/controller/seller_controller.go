package controller

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/oysloe/oysloe-backend/internal/app/service"
	apperrors "github.com/oysloe/oysloe-backend/internal/errors"
	"github.com/oysloe/oysloe-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SellerController struct {
	sellerService service.SellerService
}

func NewSellerController(sellerService service.SellerService) *SellerController {
	return &SellerController{
		sellerService: sellerService,
	}
}

// SubmitSellerRequest 공개 입점 신청 폼
type SubmitSellerRequest struct {
	BusinessName        string                `json:"business_name" binding:"required,notblank,max=200"`
	BusinessType        model.BusinessType    `json:"business_type" binding:"omitempty,oneof=individual business retailer wholesaler manufacturer distributor"`
	BusinessDescription string                `json:"business_description" binding:"required,notblank"`
	OwnerName           string                `json:"owner_name" binding:"required,notblank,max=200"`
	EmailAddress        string                `json:"email_address" binding:"required,email,max=254"`
	PhoneNumber         string                `json:"phone_number" binding:"required,notblank,max=20"`
	Location            string                `json:"location" binding:"required,notblank,max=200"`
	ExperienceLevel     model.ExperienceLevel `json:"experience_level" binding:"omitempty,oneof=beginner intermediate advanced expert"`
	InventorySize       model.InventorySize   `json:"inventory_size" binding:"required,oneof=small medium large enterprise"`
}

type UpdateStatusRequest struct {
	Status      string  `json:"status" binding:"required"`
	ReviewNotes *string `json:"review_notes"`
}

type BulkDeleteRequest struct {
	SellerIDs []uint `json:"sellerIds"`
}

type AssignReviewersRequest struct {
	UserIDs []uint `json:"user_ids"`
}

// Submit handles the public seller application form
// POST /api/v1/submit-seller/
func (ctrl *SellerController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SubmitSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid seller application", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindError(c, err)
		return
	}

	seller, err := ctrl.sellerService.Submit(c.Request.Context(), service.SellerApplication{
		BusinessName:        req.BusinessName,
		BusinessType:        req.BusinessType,
		BusinessDescription: req.BusinessDescription,
		OwnerName:           req.OwnerName,
		EmailAddress:        req.EmailAddress,
		PhoneNumber:         req.PhoneNumber,
		Location:            req.Location,
		ExperienceLevel:     req.ExperienceLevel,
		InventorySize:       req.InventorySize,
	})
	if err != nil {
		log.Error("Seller application failed", err, map[string]interface{}{
			"business_name": req.BusinessName,
		})
		apperrors.ParseAndRespond(c, err, "seller")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Application submitted successfully!",
		"seller_id": seller.ID,
	})
}

// List GET /api/v1/sellers/?status=pending&search=acme
func (ctrl *SellerController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	filter := sellerFilterFromQuery(c)

	sellers, err := ctrl.sellerService.List(c.Request.Context(), filter)
	if err != nil {
		log.Error("Failed to list sellers", err, map[string]interface{}{
			"status": filter.Status,
			"search": filter.Search,
		})
		apperrors.ParseAndRespond(c, err, "seller")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sellers": sellers,
		"count":   len(sellers),
	})
}

// Get GET /api/v1/sellers/:id/
func (ctrl *SellerController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := sellerIDParam(c)
	if !ok {
		return
	}

	seller, err := ctrl.sellerService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSellerNotFound) {
			apperrors.NotFound(c, apperrors.SellerNotFound, "Seller not found")
			return
		}
		log.Error("Failed to fetch seller", err, map[string]interface{}{
			"seller_id": id,
		})
		apperrors.ParseAndRespond(c, err, "seller")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"seller": seller,
	})
}

// UpdateStatus records a review decision by the current staff user
// PATCH /api/v1/sellers/:id/update_status/
func (ctrl *SellerController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := sellerIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid status update request", map[string]interface{}{
			"seller_id": id,
			"error":     err.Error(),
		})
		apperrors.RespondWithBindError(c, err)
		return
	}

	reviewerID, _ := middleware.GetUserID(c)
	seller, err := ctrl.sellerService.UpdateStatus(c.Request.Context(), id, req.Status, req.ReviewNotes, reviewerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			apperrors.BadRequest(c, apperrors.SellerInvalidStatus, invalidStatusMessage())
		case errors.Is(err, service.ErrSellerNotFound):
			apperrors.NotFound(c, apperrors.SellerNotFound, "Seller not found")
		default:
			log.Error("Failed to update seller status", err, map[string]interface{}{
				"seller_id": id,
				"status":    req.Status,
			})
			apperrors.ParseAndRespond(c, err, "seller")
		}
		return
	}

	log.Info("Seller status updated", map[string]interface{}{
		"seller_id":   id,
		"status":      seller.Status,
		"reviewer_id": reviewerID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Seller status updated to %s", seller.Status.Display()),
		"seller":  seller,
	})
}

// AssignReviewers replaces the staff assigned to a seller
// PUT /api/v1/sellers/:id/assignees/
func (ctrl *SellerController) AssignReviewers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := sellerIDParam(c)
	if !ok {
		return
	}

	var req AssignReviewersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	seller, err := ctrl.sellerService.AssignReviewers(c.Request.Context(), id, req.UserIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSellerNotFound):
			apperrors.NotFound(c, apperrors.SellerNotFound, "Seller not found")
		case errors.Is(err, service.ErrUnknownStaff):
			apperrors.BadRequest(c, apperrors.SellerUnknownStaff, "One or more staff users do not exist")
		default:
			log.Error("Failed to assign reviewers", err, map[string]interface{}{
				"seller_id": id,
			})
			apperrors.ParseAndRespond(c, err, "seller")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Seller assignees updated",
		"seller":  seller,
	})
}

// BulkDelete DELETE /api/v1/sellers/bulk_delete/
func (ctrl *SellerController) BulkDelete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindError(c, err)
		return
	}

	deleted, err := ctrl.sellerService.BulkDelete(c.Request.Context(), req.SellerIDs)
	if err != nil {
		if errors.Is(err, service.ErrNoSellerIDs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.MessageNoSellerIDs})
			return
		}
		log.Error("Bulk delete failed", err, map[string]interface{}{
			"requested": len(req.SellerIDs),
		})
		apperrors.ParseAndRespond(c, err, "seller")
		return
	}

	userID, _ := middleware.GetUserID(c)
	log.Info("Sellers deleted", map[string]interface{}{
		"requested": len(req.SellerIDs),
		"deleted":   deleted,
		"user_id":   userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("%d seller(s) deleted successfully", deleted),
		"deleted_count": deleted,
	})
}

// Export streams the filtered seller list as an xlsx workbook
// GET /api/v1/sellers/export/?status=&search=
func (ctrl *SellerController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	filter := sellerFilterFromQuery(c)

	var buf bytes.Buffer
	if err := ctrl.sellerService.Export(c.Request.Context(), filter, &buf); err != nil {
		log.Error("Seller export failed", err, map[string]interface{}{
			"status": filter.Status,
			"search": filter.Search,
		})
		apperrors.ParseAndRespond(c, err, "seller")
		return
	}

	filename := fmt.Sprintf("sellers-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func sellerFilterFromQuery(c *gin.Context) model.SellerFilter {
	return model.SellerFilter{
		Status: model.SellerStatus(c.Query("status")),
		Search: c.Query("search"),
	}
}

// 숫자가 아닌 id는 존재하지 않는 리소스로 취급
func sellerIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apperrors.NotFound(c, apperrors.SellerNotFound, "Seller not found")
		return 0, false
	}
	return uint(id), true
}

func invalidStatusMessage() string {
	names := make([]string, len(model.SellerStatuses))
	for i, s := range model.SellerStatuses {
		names[i] = string(s)
	}
	return "Invalid status. Must be one of: " + strings.Join(names, ", ")
}
