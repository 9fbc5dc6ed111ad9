// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of authenticated WebSocket connections",
		},
	)

	WSPendingConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_pending_connections",
			Help: "Current number of WebSocket connections awaiting handshake",
		},
	)

	WSSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_performance_subscribers",
			Help: "Current number of connections subscribed to team performance updates",
		},
	)

	WSMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages queued for delivery",
		},
		[]string{"type"},
	)

	WSMessagesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Total number of WebSocket messages received",
		},
		[]string{"type"},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Task Metrics
	TaskTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_status_transitions_total",
			Help: "Total number of applied task status transitions",
		},
		[]string{"from", "to"},
	)

	TaskTransitionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_status_transitions_rejected_total",
			Help: "Total number of rejected task status transitions",
		},
		[]string{"from", "to"},
	)

	// Team Performance Metrics
	PerformanceComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "team_performance_compute_duration_seconds",
			Help:    "Time taken to compute a team performance snapshot",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	PerformanceMemberErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "team_performance_member_errors_total",
			Help: "Total number of team members omitted from a snapshot due to query errors",
		},
	)

	PerformanceBroadcasts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "team_performance_broadcasts_total",
			Help: "Total number of team performance broadcasts",
		},
		[]string{"trigger"}, // "subscribe", "timer", "manual"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// maxErrorTypeLen bounds the error_type label to keep cardinality in check.
const maxErrorTypeLen = 50

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > maxErrorTypeLen {
			errorType = errorType[:maxErrorTypeLen]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by a rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordWSSent counts an outbound WebSocket message by type.
func RecordWSSent(msgType string) {
	WSMessagesSent.WithLabelValues(msgType).Inc()
}

// RecordWSReceived counts an inbound WebSocket message by type.
func RecordWSReceived(msgType string) {
	WSMessagesReceived.WithLabelValues(msgType).Inc()
}

// RecordWSError counts a WebSocket error by category.
func RecordWSError(errorType string) {
	WSErrors.WithLabelValues(errorType).Inc()
}

// UpdateWSGauges publishes the hub's connection counts.
func UpdateWSGauges(authenticated, pending, subscribers int) {
	WSConnections.Set(float64(authenticated))
	WSPendingConnections.Set(float64(pending))
	WSSubscribers.Set(float64(subscribers))
}

// RecordTaskTransition counts an applied or rejected status transition.
func RecordTaskTransition(from, to string, applied bool) {
	if applied {
		TaskTransitions.WithLabelValues(from, to).Inc()
		return
	}
	TaskTransitionsRejected.WithLabelValues(from, to).Inc()
}

// RecordPerformanceCompute records how long a snapshot took and how many
// members were dropped because their queries failed.
func RecordPerformanceCompute(duration time.Duration, failedMembers int) {
	PerformanceComputeDuration.Observe(duration.Seconds())
	if failedMembers > 0 {
		PerformanceMemberErrors.Add(float64(failedMembers))
	}
}

// RecordPerformanceBroadcast counts a team performance broadcast by trigger.
func RecordPerformanceBroadcast(trigger string) {
	PerformanceBroadcasts.WithLabelValues(trigger).Inc()
}
