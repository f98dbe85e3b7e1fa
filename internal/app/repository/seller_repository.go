package repository

import (
	"context"
	"strings"
	"time"

	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/oysloe/oysloe-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SellerRepository 판매자 신청서 저장소
type SellerRepository interface {
	WithTx(tx *gorm.DB) SellerRepository
	Create(ctx context.Context, seller *model.Seller) error
	FindByID(ctx context.Context, id uint) (*model.Seller, error)
	FindAll(ctx context.Context, filter model.SellerFilter) ([]model.Seller, error)
	UpdateReview(ctx context.Context, id uint, review SellerReview) error
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	ReplaceAssignees(ctx context.Context, sellerID uint, userIDs []uint) error
	CountByStatus(ctx context.Context) (*model.SellerStatusCounts, error)
}

// SellerReview is the set of columns written by a status change.
// Notes nil keeps the stored review notes.
type SellerReview struct {
	Status     model.SellerStatus
	Notes      *string
	ReviewerID uint
	ReviewedAt time.Time
}

type sellerRepository struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) SellerRepository {
	return &sellerRepository{db: db}
}

func (r *sellerRepository) WithTx(tx *gorm.DB) SellerRepository {
	return &sellerRepository{db: tx}
}

func (r *sellerRepository) Create(ctx context.Context, seller *model.Seller) error {
	logger.Debug("Creating seller in database", map[string]interface{}{
		"business_name": seller.BusinessName,
		"email":         seller.EmailAddress,
	})

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(seller).Error; err != nil {
		logger.Error("Failed to create seller in database", err, map[string]interface{}{
			"business_name": seller.BusinessName,
		})
		return err
	}

	logger.Debug("Seller created in database", map[string]interface{}{
		"seller_id": seller.ID,
	})
	return nil
}

func (r *sellerRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("ReviewedBy").
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("user_id ASC")
		}).
		Preload("Assignments.User")
}

func (r *sellerRepository) FindByID(ctx context.Context, id uint) (*model.Seller, error) {
	var seller model.Seller
	if err := r.withRelations(r.db.WithContext(ctx)).First(&seller, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find seller by ID", err, map[string]interface{}{
				"seller_id": id,
			})
		}
		return nil, err
	}
	fillAssignees(&seller)
	return &seller, nil
}

func (r *sellerRepository) FindAll(ctx context.Context, filter model.SellerFilter) ([]model.Seller, error) {
	query := r.withRelations(applySellerFilter(r.db.WithContext(ctx).Model(&model.Seller{}), filter))

	sellers := make([]model.Seller, 0)
	if err := query.Order("created_at DESC").Order("id DESC").Find(&sellers).Error; err != nil {
		logger.Error("Failed to list sellers", err, map[string]interface{}{
			"status": filter.Status,
			"search": filter.Search,
		})
		return nil, err
	}

	for i := range sellers {
		fillAssignees(&sellers[i])
	}

	logger.Debug("Sellers listed", map[string]interface{}{
		"count":  len(sellers),
		"status": filter.Status,
	})
	return sellers, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applySellerFilter: status는 정확히 일치, search는 세 필드 OR 부분일치 (대소문자 무시)
func applySellerFilter(query *gorm.DB, filter model.SellerFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	search := strings.TrimSpace(filter.Search)
	if search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where(
			`(LOWER(business_name) LIKE ? ESCAPE '\' OR LOWER(owner_name) LIKE ? ESCAPE '\' OR LOWER(email_address) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	return query
}

func fillAssignees(seller *model.Seller) {
	seller.Assignees = make([]model.User, 0, len(seller.Assignments))
	for _, a := range seller.Assignments {
		seller.Assignees = append(seller.Assignees, a.User)
	}
}

func (r *sellerRepository) UpdateReview(ctx context.Context, id uint, review SellerReview) error {
	updates := map[string]interface{}{
		"status":         review.Status,
		"reviewed_by_id": review.ReviewerID,
		"reviewed_at":    review.ReviewedAt,
	}
	if review.Notes != nil {
		updates["review_notes"] = *review.Notes
	}

	result := r.db.WithContext(ctx).Model(&model.Seller{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.Error("Failed to update seller review", result.Error, map[string]interface{}{
			"seller_id": id,
			"status":    review.Status,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Info("Seller review updated", map[string]interface{}{
		"seller_id":   id,
		"status":      review.Status,
		"reviewer_id": review.ReviewerID,
	})
	return nil
}

// DeleteByIDs 존재하는 신청서만 삭제하고 삭제 건수를 반환
func (r *sellerRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("seller_id IN ?", ids).Delete(&model.SellerAssignment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&model.Seller{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		logger.Error("Failed to bulk delete sellers", err, map[string]interface{}{
			"requested": len(ids),
		})
		return 0, err
	}

	logger.Info("Sellers deleted", map[string]interface{}{
		"requested": len(ids),
		"deleted":   deleted,
	})
	return deleted, nil
}

// ReplaceAssignees 담당자 목록 전체 교체
func (r *sellerRepository) ReplaceAssignees(ctx context.Context, sellerID uint, userIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("seller_id = ?", sellerID).Delete(&model.SellerAssignment{}).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}
		rows := make([]model.SellerAssignment, 0, len(userIDs))
		for _, userID := range userIDs {
			rows = append(rows, model.SellerAssignment{SellerID: sellerID, UserID: userID})
		}
		return tx.Omit(clause.Associations).Create(&rows).Error
	})
	if err != nil {
		logger.Error("Failed to replace seller assignees", err, map[string]interface{}{
			"seller_id": sellerID,
		})
		return err
	}
	return nil
}

func (r *sellerRepository) CountByStatus(ctx context.Context) (*model.SellerStatusCounts, error) {
	var rows []struct {
		Status model.SellerStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Seller{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		logger.Error("Failed to count sellers by status", err)
		return nil, err
	}

	counts := &model.SellerStatusCounts{}
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case model.SellerStatusPending:
			counts.Pending = row.Count
		case model.SellerStatusApproved:
			counts.Approved = row.Count
		case model.SellerStatusRejected:
			counts.Rejected = row.Count
		}
	}
	return counts, nil
}
