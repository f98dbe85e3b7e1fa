package model

// DateLayout is the calendar-date format used for Analytics.Date.
const DateLayout = "2006-01-02"

// Analytics 일별 방문/신청 카운터
// Date는 YYYY-MM-DD 문자열로 저장되어 사전순 비교가 날짜순과 같다.
type Analytics struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Date            string `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"`
	PageViews       int64  `gorm:"not null;default:0" json:"page_views"`
	FormSubmissions int64  `gorm:"not null;default:0" json:"form_submissions"`
}

func (Analytics) TableName() string {
	return "analytics"
}

// AnalyticsCounter names an increment-only counter column.
type AnalyticsCounter string

const (
	CounterPageViews       AnalyticsCounter = "page_views"
	CounterFormSubmissions AnalyticsCounter = "form_submissions"
)

// AnalyticsTotals 기간 합계
type AnalyticsTotals struct {
	TotalViews       int64 `json:"total_views"`
	TotalSubmissions int64 `json:"total_submissions"`
	TotalDays        int64 `json:"total_days"`
}

// DailyAnalytics 차트용 일별 데이터
type DailyAnalytics struct {
	Date            string `json:"date"`
	PageViews       int64  `json:"page_views"`
	FormSubmissions int64  `json:"form_submissions"`
}
