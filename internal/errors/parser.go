package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes handled by ParseError
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// ParseError 저장소 에러를 코드/메시지로 변환
// DB 원문 메시지는 노출하지 않는다. context는 "seller", "pricing plan" 같은 대상 이름.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	// 1. PostgreSQL (pgx)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return duplicateKeyInfo(pgErr.ConstraintName + " " + pgErr.Message)
		case pgForeignKeyViolation:
			return foreignKeyInfo(pgErr.ConstraintName + " " + pgErr.Detail)
		case pgNotNullViolation:
			return ErrorInfo{Code: ValidationRequired, Message: "Missing required field: " + pgErr.ColumnName}
		}
		return ErrorInfo{Code: InternalDatabaseError, Message: defaultMessage(context)}
	}

	// 2. SQLite 및 기타 드라이버 (문자열 기반)
	errLower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errLower, "unique constraint") || strings.Contains(errLower, "duplicate key"):
		return duplicateKeyInfo(errLower)
	case strings.Contains(errLower, "foreign key constraint"):
		return foreignKeyInfo(errLower)
	case strings.Contains(errLower, "not null constraint"):
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	case strings.Contains(errLower, "connection refused") || strings.Contains(errLower, "timeout"):
		return ErrorInfo{Code: InternalDatabaseError, Message: "Database is unavailable. Please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: defaultMessage(context)}
}

func duplicateKeyInfo(detail string) ErrorInfo {
	detail = strings.ToLower(detail)
	switch {
	case strings.Contains(detail, "email"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Email is already in use"}
	case strings.Contains(detail, "pricing_plans"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "A pricing plan with this name already exists"}
	case strings.Contains(detail, "seller_assignments"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Staff member is already assigned"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Resource already exists"}
}

func foreignKeyInfo(detail string) ErrorInfo {
	detail = strings.ToLower(detail)
	for _, ref := range []string{"user_id", "reviewed_by", "fk_users", "seller_assignments_user"} {
		if strings.Contains(detail, ref) {
			return ErrorInfo{Code: SellerUnknownStaff, Message: "Referenced staff user does not exist"}
		}
	}
	return ErrorInfo{Code: ResourceConflict, Message: "Referenced resource does not exist"}
}

func notFoundMessage(context string) string {
	context = strings.TrimSpace(context)
	if context == "" {
		return "Requested resource not found"
	}
	return strings.ToUpper(context[:1]) + context[1:] + " not found"
}

func defaultMessage(context string) string {
	if context == "" {
		return "Something went wrong. Please try again later"
	}
	return "Failed to process " + context + ". Please try again later"
}

// ParseAndRespond 에러를 파싱하여 코드에 맞는 상태로 응답
func ParseAndRespond(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	switch info.Code {
	case ResourceNotFound:
		NotFound(c, info.Code, info.Message)
	case ResourceAlreadyExists, ResourceConflict:
		Conflict(c, info.Code, info.Message)
	case ValidationRequired, SellerUnknownStaff:
		BadRequest(c, info.Code, info.Message)
	default:
		RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
	}
}
