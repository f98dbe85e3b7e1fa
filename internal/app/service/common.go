package service

import (
	"context"
	"strings"
	"time"

	"github.com/oysloe/oysloe-backend/internal/app/model"
)

// Cache is the JSON cache used for the public pricing listing.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TokenBlacklist stores revoked token ids until they expire.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, tokenID string, expiry time.Duration) error
	IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// FunnelMetrics counts onboarding events. Implemented by *metrics.Metrics.
type FunnelMetrics interface {
	IncPageview()
	IncSubmission()
	IncStatusChange(status string)
}

type noopMetrics struct{}

func (noopMetrics) IncPageview()           {}
func (noopMetrics) IncSubmission()         {}
func (noopMetrics) IncStatusChange(string) {}

func metricsOrNoop(m FunnelMetrics) FunnelMetrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}

// ValidationError carries field-level problems detected by a service.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// Calendar resolves "today" in the analytics timezone.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc, now: time.Now}
}

// Today 분석 타임존 기준 오늘 자정
func (c *Calendar) Today() time.Time {
	n := c.now().In(c.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, c.loc)
}

func (c *Calendar) Now() time.Time {
	return c.now()
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

func formatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

// Period 집계 기간
type Period string

const (
	PeriodToday  Period = "today"
	Period7Days  Period = "7days"
	Period30Days Period = "30days"
	Period90Days Period = "90days"
)

// NormalizePeriod maps unknown or empty values to 7days.
func NormalizePeriod(raw string) Period {
	switch p := Period(strings.TrimSpace(raw)); p {
	case PeriodToday, Period7Days, Period30Days, Period90Days:
		return p
	}
	return Period7Days
}

// Days back from today to the first counted date.
func (p Period) Days() int {
	switch p {
	case PeriodToday:
		return 0
	case Period30Days:
		return 30
	case Period90Days:
		return 90
	}
	return 7
}

// StartDate is today minus the period length (today itself for "today").
func (p Period) StartDate(today time.Time) time.Time {
	return today.AddDate(0, 0, -p.Days())
}
