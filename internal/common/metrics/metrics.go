// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rect_api_requests_total",
			Help: "Total number of backend API requests by scope and status",
		},
		[]string{"scope", "status"},
	)

	SessionLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rect_session_logins_total",
			Help: "Total number of login attempts by scope and outcome",
		},
		[]string{"scope", "outcome"},
	)

	SessionExpiries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rect_session_expiries_total",
			Help: "Total number of sessions terminated by token expiry",
		},
		[]string{"scope"},
	)

	SessionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rect_sessions_active",
			Help: "Whether a scope currently holds an authenticated session",
		},
		[]string{"scope"},
	)

	DashboardRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "rect_dashboard_refresh_duration_seconds",
			Help: "Duration of dashboard data refreshes in seconds",
		},
	)
)
