package model

import (
	"time"
)

type UserRole string // 스태프 권한 타입

const (
	RoleStaff UserRole = "staff" // 신청서 심사 스태프
	RoleAdmin UserRole = "admin" // 요금제 편집 가능 관리자
)

func (r UserRole) IsValid() bool {
	return r == RoleStaff || r == RoleAdmin
}

// User 스태프 계정. 판매자 신청서의 reviewed_by / 담당자로 참조된다.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
