// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formflow_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "formflow_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "route"},
	)

	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formflow_classifications_total",
			Help: "Total number of intent classifications by intent and source",
		},
		[]string{"intent", "source"},
	)

	FormsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formflow_forms_generated_total",
			Help: "Total number of forms generated by intent",
		},
		[]string{"intent"},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formflow_submissions_total",
			Help: "Total number of form submissions by outcome",
		},
		[]string{"intent", "status"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formflow_notifications_total",
			Help: "Total number of notifications dispatched by type and status",
		},
		[]string{"type", "status"},
	)

	EmailBatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "formflow_email_batch_duration_seconds",
			Help: "Duration of bulk email batch sends in seconds",
		},
		[]string{"outcome"},
	)
)
