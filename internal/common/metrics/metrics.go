// internal/common/metrics/metrics.go
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of outbound backend calls",
		},
		[]string{"system", "operation", "status"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "backend_request_duration_seconds",
			Help: "Duration of outbound backend calls in seconds",
		},
		[]string{"system", "operation"},
	)

	AdapterActionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adapter_actions_failed_total",
			Help: "Total number of adapter operations failed by error code",
		},
		[]string{"system", "operation", "error_code"},
	)

	AdapterActionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adapter_actions_completed_total",
			Help: "Total number of adapter operations completed",
		},
		[]string{"system", "operation"},
	)
)

// ObserveBackendCall records one outbound backend call. status is the
// upstream HTTP status, or 0 for a transport-level failure.
func ObserveBackendCall(system, operation string, start time.Time, status int, err error) {
	BackendRequestDuration.WithLabelValues(system, operation).Observe(time.Since(start).Seconds())

	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	} else if err == nil {
		label = "ok"
	}
	BackendRequestsTotal.WithLabelValues(system, operation, label).Inc()
}
