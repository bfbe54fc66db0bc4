package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contactsvc_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "contactsvc_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contactsvc_login_attempts_total",
		Help: "Count of login attempts by result",
	}, []string{"result"})

	emailDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contactsvc_email_deliveries_total",
		Help: "Count of outgoing emails by result",
	}, []string{"result"})

	avatarUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contactsvc_avatar_uploads_total",
		Help: "Count of avatar uploads by result",
	}, []string{"result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveLogin counts a login attempt with a result label ("success" or "failure").
func ObserveLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

// ObserveEmail counts an outgoing email ("sent", "mocked" or "error").
func ObserveEmail(result string) {
	emailDeliveries.WithLabelValues(result).Inc()
}

// ObserveAvatarUpload counts an avatar upload attempt.
func ObserveAvatarUpload(result string) {
	avatarUploads.WithLabelValues(result).Inc()
}
