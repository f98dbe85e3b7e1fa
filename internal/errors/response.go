package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 표준 에러 응답 구조
type ErrorResponse struct {
	Error   string `json:"error"`   // 에러 코드
	Message string `json:"message"` // 사람이 읽는 메시지
}

// RespondWithError 에러 응답 헬퍼
// statusCode: HTTP 상태 코드
// errorCode: 에러 코드 상수 (codes.go 참조)
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// 자주 사용하는 에러 응답 단축 함수들

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "You do not have permission to perform this action"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Something went wrong. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// ValidationError 필드별 검증 오류
// 공개 폼 계약: {"error": "Validation failed", "details": {"field": "message"}}
type ValidationError struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func RespondWithValidationError(c *gin.Context, details map[string]string) {
	if details == nil {
		details = map[string]string{}
	}
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   MessageValidationFailed,
		Details: details,
	})
}

// RespondWithInvalidJSON 본문 파싱 실패
func RespondWithInvalidJSON(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": MessageInvalidJSON})
}

// RespondWithBindError splits a ShouldBindJSON failure into the
// field-level validation response or the malformed-body response.
func RespondWithBindError(c *gin.Context, err error) {
	if details, ok := ValidationDetails(err); ok {
		RespondWithValidationError(c, details)
		return
	}
	RespondWithInvalidJSON(c)
}
