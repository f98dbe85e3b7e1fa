package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/oysloe/oysloe-backend/internal/app/repository"
	"github.com/oysloe/oysloe-backend/pkg/logger"
	"github.com/oysloe/oysloe-backend/pkg/spreadsheet"
	"gorm.io/gorm"
)

var (
	ErrSellerNotFound = errors.New("seller not found")
	ErrInvalidStatus  = errors.New("invalid seller status")
	ErrNoSellerIDs    = errors.New("no seller IDs provided")
	ErrUnknownStaff   = errors.New("one or more staff users do not exist")
)

// SellerApplication 공개 신청 폼 입력 (검증은 바인딩 단계에서 끝난 상태)
type SellerApplication struct {
	BusinessName        string
	BusinessType        model.BusinessType
	BusinessDescription string
	OwnerName           string
	EmailAddress        string
	PhoneNumber         string
	Location            string
	ExperienceLevel     model.ExperienceLevel
	InventorySize       model.InventorySize
}

type SellerService interface {
	Submit(ctx context.Context, app SellerApplication) (*model.Seller, error)
	List(ctx context.Context, filter model.SellerFilter) ([]model.Seller, error)
	Get(ctx context.Context, id uint) (*model.Seller, error)
	UpdateStatus(ctx context.Context, id uint, status string, notes *string, reviewerID uint) (*model.Seller, error)
	BulkDelete(ctx context.Context, ids []uint) (int64, error)
	AssignReviewers(ctx context.Context, id uint, userIDs []uint) (*model.Seller, error)
	Export(ctx context.Context, filter model.SellerFilter, w io.Writer) error
}

type sellerService struct {
	db            *gorm.DB
	sellerRepo    repository.SellerRepository
	analyticsRepo repository.AnalyticsRepository
	userRepo      repository.UserRepository
	calendar      *Calendar
	metrics       FunnelMetrics
}

func NewSellerService(
	db *gorm.DB,
	sellerRepo repository.SellerRepository,
	analyticsRepo repository.AnalyticsRepository,
	userRepo repository.UserRepository,
	calendar *Calendar,
	metrics FunnelMetrics,
) SellerService {
	return &sellerService{
		db:            db,
		sellerRepo:    sellerRepo,
		analyticsRepo: analyticsRepo,
		userRepo:      userRepo,
		calendar:      calendar,
		metrics:       metricsOrNoop(metrics),
	}
}

// Submit stores a new pending application and counts today's form submission
// in the same transaction.
func (s *sellerService) Submit(ctx context.Context, app SellerApplication) (*model.Seller, error) {
	seller := &model.Seller{
		BusinessName:        strings.TrimSpace(app.BusinessName),
		BusinessType:        app.BusinessType,
		BusinessDescription: app.BusinessDescription,
		OwnerName:           strings.TrimSpace(app.OwnerName),
		EmailAddress:        strings.TrimSpace(app.EmailAddress),
		PhoneNumber:         strings.TrimSpace(app.PhoneNumber),
		Location:            strings.TrimSpace(app.Location),
		ExperienceLevel:     app.ExperienceLevel,
		InventorySize:       app.InventorySize,
		Status:              model.SellerStatusPending,
	}
	if seller.BusinessType == "" {
		seller.BusinessType = model.BusinessTypeIndividual
	}
	if seller.ExperienceLevel == "" {
		seller.ExperienceLevel = model.ExperienceBeginner
	}

	date := formatDate(s.calendar.Today())
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.sellerRepo.WithTx(tx).Create(ctx, seller); err != nil {
			return err
		}
		_, err := s.analyticsRepo.WithTx(tx).Increment(ctx, date, model.CounterFormSubmissions)
		return err
	})
	if err != nil {
		logger.Error("Failed to submit seller application", err, map[string]interface{}{
			"business_name": seller.BusinessName,
			"email":         seller.EmailAddress,
		})
		return nil, err
	}

	s.metrics.IncSubmission()
	logger.Info("Seller application submitted", map[string]interface{}{
		"seller_id":     seller.ID,
		"business_name": seller.BusinessName,
	})
	return seller, nil
}

func (s *sellerService) List(ctx context.Context, filter model.SellerFilter) ([]model.Seller, error) {
	return s.sellerRepo.FindAll(ctx, filter)
}

func (s *sellerService) Get(ctx context.Context, id uint) (*model.Seller, error) {
	seller, err := s.sellerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSellerNotFound
		}
		return nil, err
	}
	return seller, nil
}

// UpdateStatus records a review decision. Every transition is allowed,
// including moving a decided application back to pending.
func (s *sellerService) UpdateStatus(ctx context.Context, id uint, status string, notes *string, reviewerID uint) (*model.Seller, error) {
	next := model.SellerStatus(status)
	if !next.IsValid() {
		return nil, ErrInvalidStatus
	}

	err := s.sellerRepo.UpdateReview(ctx, id, repository.SellerReview{
		Status:     next,
		Notes:      notes,
		ReviewerID: reviewerID,
		ReviewedAt: s.calendar.Now(),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSellerNotFound
		}
		return nil, err
	}

	s.metrics.IncStatusChange(string(next))
	return s.Get(ctx, id)
}

func (s *sellerService) BulkDelete(ctx context.Context, ids []uint) (int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, ErrNoSellerIDs
	}
	return s.sellerRepo.DeleteByIDs(ctx, ids)
}

// AssignReviewers replaces the seller's assigned staff with userIDs.
// An empty list clears the assignment.
func (s *sellerService) AssignReviewers(ctx context.Context, id uint, userIDs []uint) (*model.Seller, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	userIDs = uniqueIDs(userIDs)
	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	if len(users) != len(userIDs) {
		logger.Warn("Assign reviewers rejected: unknown staff", map[string]interface{}{
			"seller_id": id,
			"requested": len(userIDs),
			"found":     len(users),
		})
		return nil, ErrUnknownStaff
	}

	if err := s.sellerRepo.ReplaceAssignees(ctx, id, userIDs); err != nil {
		return nil, err
	}

	logger.Info("Seller assignees updated", map[string]interface{}{
		"seller_id": id,
		"assignees": userIDs,
	})
	return s.Get(ctx, id)
}

func (s *sellerService) Export(ctx context.Context, filter model.SellerFilter, w io.Writer) error {
	sellers, err := s.sellerRepo.FindAll(ctx, filter)
	if err != nil {
		return err
	}
	return spreadsheet.WriteSellers(w, sellers, s.calendar.Location())
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
