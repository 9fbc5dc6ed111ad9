// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantType  string
	}{
		{"successful select", "SELECT", "tasks", nil, ""},
		{"failed update", "UPDATE", "tasks", errors.New("connection refused"), "connection refused"},
		{
			"long error is truncated",
			"INSERT",
			"task_activities",
			errors.New(strings.Repeat("x", 120)),
			strings.Repeat("x", maxErrorTypeLen),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDBQuery(tt.operation, tt.table, 10*time.Millisecond, tt.err)
			if tt.err == nil {
				return
			}
			got := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.wantType))
			if got < 1 {
				t.Errorf("DBQueryErrors{%s,%s,%q} = %v, want >= 1", tt.operation, tt.table, tt.wantType, got)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/tasks", "200"))
	RecordAPIRequest("GET", "/api/v1/tasks", "200", 5*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/tasks", "200"))
	if after != before+1 {
		t.Errorf("api_requests_total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestWebSocketMetrics(t *testing.T) {
	UpdateWSGauges(3, 1, 2)
	if got := testutil.ToFloat64(WSConnections); got != 3 {
		t.Errorf("websocket_connections = %v, want 3", got)
	}
	if got := testutil.ToFloat64(WSPendingConnections); got != 1 {
		t.Errorf("websocket_pending_connections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(WSSubscribers); got != 2 {
		t.Errorf("websocket_performance_subscribers = %v, want 2", got)
	}

	before := testutil.ToFloat64(WSMessagesSent.WithLabelValues("task_update"))
	RecordWSSent("task_update")
	if got := testutil.ToFloat64(WSMessagesSent.WithLabelValues("task_update")); got != before+1 {
		t.Errorf("websocket_messages_sent_total = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(WSErrors.WithLabelValues("send_buffer_full"))
	RecordWSError("send_buffer_full")
	if got := testutil.ToFloat64(WSErrors.WithLabelValues("send_buffer_full")); got != before+1 {
		t.Errorf("websocket_errors_total = %v, want %v", got, before+1)
	}
}

func TestRecordTaskTransition(t *testing.T) {
	applied := testutil.ToFloat64(TaskTransitions.WithLabelValues("pending", "completed"))
	rejected := testutil.ToFloat64(TaskTransitionsRejected.WithLabelValues("completed", "cancelled"))

	RecordTaskTransition("pending", "completed", true)
	RecordTaskTransition("completed", "cancelled", false)

	if got := testutil.ToFloat64(TaskTransitions.WithLabelValues("pending", "completed")); got != applied+1 {
		t.Errorf("applied transitions = %v, want %v", got, applied+1)
	}
	if got := testutil.ToFloat64(TaskTransitionsRejected.WithLabelValues("completed", "cancelled")); got != rejected+1 {
		t.Errorf("rejected transitions = %v, want %v", got, rejected+1)
	}
}

func TestRecordPerformanceCompute(t *testing.T) {
	before := testutil.ToFloat64(PerformanceMemberErrors)
	RecordPerformanceCompute(20*time.Millisecond, 0)
	RecordPerformanceCompute(20*time.Millisecond, 2)
	if got := testutil.ToFloat64(PerformanceMemberErrors); got != before+2 {
		t.Errorf("team_performance_member_errors_total = %v, want %v", got, before+2)
	}

	b := testutil.ToFloat64(PerformanceBroadcasts.WithLabelValues("timer"))
	RecordPerformanceBroadcast("timer")
	if got := testutil.ToFloat64(PerformanceBroadcasts.WithLabelValues("timer")); got != b+1 {
		t.Errorf("team_performance_broadcasts_total = %v, want %v", got, b+1)
	}
}
