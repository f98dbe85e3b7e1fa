package model

import (
	"time"
)

// SellerStatus 판매자 신청 심사 상태
type SellerStatus string

const (
	SellerStatusPending  SellerStatus = "pending"
	SellerStatusApproved SellerStatus = "approved"
	SellerStatusRejected SellerStatus = "rejected"
)

// SellerStatuses lists every review state in display order.
var SellerStatuses = []SellerStatus{SellerStatusPending, SellerStatusApproved, SellerStatusRejected}

func (s SellerStatus) IsValid() bool {
	switch s {
	case SellerStatusPending, SellerStatusApproved, SellerStatusRejected:
		return true
	}
	return false
}

// Display 사람이 읽을 수 있는 상태명
func (s SellerStatus) Display() string {
	switch s {
	case SellerStatusPending:
		return "Pending"
	case SellerStatusApproved:
		return "Approved"
	case SellerStatusRejected:
		return "Rejected"
	}
	return string(s)
}

type BusinessType string

const (
	BusinessTypeIndividual   BusinessType = "individual"
	BusinessTypeBusiness     BusinessType = "business"
	BusinessTypeRetailer     BusinessType = "retailer"
	BusinessTypeWholesaler   BusinessType = "wholesaler"
	BusinessTypeManufacturer BusinessType = "manufacturer"
	BusinessTypeDistributor  BusinessType = "distributor"
)

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceExpert       ExperienceLevel = "expert"
)

type InventorySize string

const (
	InventorySmall      InventorySize = "small"      // 1-50 items
	InventoryMedium     InventorySize = "medium"     // 51-200 items
	InventoryLarge      InventorySize = "large"      // 201-500 items
	InventoryEnterprise InventorySize = "enterprise" // 500+ items
)

// Seller 판매자 입점 신청서
type Seller struct {
	ID uint `gorm:"primarykey" json:"id"`

	// Business information
	BusinessName        string       `gorm:"type:varchar(200);not null;index" json:"business_name"`
	BusinessType        BusinessType `gorm:"type:varchar(50);not null;default:'individual'" json:"business_type"`
	BusinessDescription string       `gorm:"type:text;not null" json:"business_description"`

	// Owner information
	OwnerName    string `gorm:"type:varchar(200);not null;index" json:"owner_name"`
	EmailAddress string `gorm:"type:varchar(254);not null;index" json:"email_address"`
	PhoneNumber  string `gorm:"type:varchar(20);not null" json:"phone_number"`
	Location     string `gorm:"type:varchar(200);not null" json:"location"`

	ExperienceLevel ExperienceLevel `gorm:"type:varchar(20);not null;default:'beginner'" json:"experience_level"`
	InventorySize   InventorySize   `gorm:"type:varchar(20);not null" json:"inventory_size"`

	Status    SellerStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Review fields, written together by the status update path only
	ReviewedByID *uint      `gorm:"index" json:"reviewed_by_id"`
	ReviewedBy   *User      `gorm:"foreignKey:ReviewedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"reviewed_by"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	ReviewNotes  string     `gorm:"type:text;not null;default:''" json:"review_notes"`

	Assignments []SellerAssignment `gorm:"foreignKey:SellerID" json:"-"`
	Assignees   []User             `gorm:"-" json:"assigned_admins"`
}

func (Seller) TableName() string {
	return "sellers"
}

// SellerAssignment 판매자 신청서 - 담당 스태프 연결 테이블
type SellerAssignment struct {
	SellerID  uint      `gorm:"primaryKey;autoIncrement:false" json:"seller_id"`
	Seller    Seller    `gorm:"foreignKey:SellerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (SellerAssignment) TableName() string {
	return "seller_assignments"
}

// SellerFilter 목록 조회 조건
type SellerFilter struct {
	Status SellerStatus
	Search string
}

// SellerStatusCounts 상태별 판매자 수
type SellerStatusCounts struct {
	Total    int64 `json:"total_sellers"`
	Pending  int64 `json:"pending_sellers"`
	Approved int64 `json:"approved_sellers"`
	Rejected int64 `json:"rejected_sellers"`
}
