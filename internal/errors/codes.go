package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 클라이언트는 message 대신 이 코드로 분기한다

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // 로그인 필요
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // 잘못된 이메일/비밀번호
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // 토큰 만료
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // 잘못된 토큰
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // 로그아웃된 토큰

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"  // 접근 권한 없음
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY" // 관리자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // 잘못된 ID
	ValidationRequired     = "VALIDATION_REQUIRED"      // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 판매자 신청 (SELLER_) ====================
	SellerNotFound      = "SELLER_NOT_FOUND"      // 신청서 없음
	SellerInvalidStatus = "SELLER_INVALID_STATUS" // 잘못된 심사 상태
	SellerNoIDs         = "SELLER_NO_IDS"         // 삭제 대상 없음
	SellerUnknownStaff  = "SELLER_UNKNOWN_STAFF"  // 존재하지 않는 담당자

	// ==================== 요금제 (PRICING_) ====================
	PricingPlanNotFound = "PRICING_PLAN_NOT_FOUND" // 요금제 없음
	PricingInvalidPlan  = "PRICING_INVALID_PLAN"   // 잘못된 요금제 구성

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalCacheError    = "INTERNAL_CACHE_ERROR"    // Redis 오류
)

// Fixed messages shared with the public form contract.
const (
	MessageValidationFailed = "Validation failed"
	MessageInvalidJSON      = "Invalid JSON data"
	MessageNoSellerIDs      = "No seller IDs provided"
)
