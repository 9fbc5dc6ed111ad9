// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed on /metrics by the API router.

# Available Metrics

Database:
  - duckdb_query_duration_seconds{operation, table}
  - duckdb_query_errors_total{operation, table, error_type}

HTTP API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

WebSocket hub:
  - websocket_connections, websocket_pending_connections
  - websocket_performance_subscribers
  - websocket_messages_sent_total{type}, websocket_messages_received_total{type}
  - websocket_errors_total{error_type}

Tasks and team performance:
  - task_status_transitions_total{from, to}
  - task_status_transitions_rejected_total{from, to}
  - team_performance_compute_duration_seconds
  - team_performance_member_errors_total
  - team_performance_broadcasts_total{trigger}
*/
package metrics
