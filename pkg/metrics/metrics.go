package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "oysloe"

// Metrics holds the HTTP and onboarding-funnel collectors.
// A nil *Metrics (or one built with a nil registerer) records nothing.
type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	pageviews     prometheus.Counter
	submissions   prometheus.Counter
	statusChanges *prometheus.CounterVec
}

// New registers the collectors on the provided registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	pageviews := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pageviews_total",
		Help:      "Landing page views recorded.",
	})
	submissions := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seller_submissions_total",
		Help:      "Seller applications accepted.",
	})
	statusChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seller_status_changes_total",
		Help:      "Seller review decisions by resulting status.",
	}, []string{"status"})
	reg.MustRegister(requests, duration, pageviews, submissions, statusChanges)

	return &Metrics{
		requests:      requests,
		duration:      duration,
		pageviews:     pageviews,
		submissions:   submissions,
		statusChanges: statusChanges,
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) IncPageview() {
	if m == nil || m.pageviews == nil {
		return
	}
	m.pageviews.Inc()
}

func (m *Metrics) IncSubmission() {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.Inc()
}

func (m *Metrics) IncStatusChange(status string) {
	if m == nil || m.statusChanges == nil {
		return
	}
	m.statusChanges.WithLabelValues(normalizeLabel(status)).Inc()
}

// empty route: no gin route matched
func normalizeLabel(v string) string {
	if v == "" {
		return "unmatched"
	}
	return v
}
