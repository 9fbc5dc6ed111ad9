// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/taskpulse/internal/cache"
	"github.com/tomtom215/taskpulse/internal/config"
	"github.com/tomtom215/taskpulse/internal/logging"
	"github.com/tomtom215/taskpulse/internal/models"
	ws "github.com/tomtom215/taskpulse/internal/websocket"
)

// Store is the read access the REST handlers need.
type Store interface {
	Ping(ctx context.Context) error
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	ListTaskActivities(ctx context.Context, taskID int64) ([]models.TaskActivity, error)
}

// PerformanceSource produces team performance snapshots.
type PerformanceSource interface {
	Compute(ctx context.Context) (*models.TeamPerformanceSnapshot, error)
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade (this file)
//   - handlers_health.go: liveness and readiness probes
//   - handlers_tasks.go: task and team performance endpoints
//   - handlers_helpers.go: response and parameter helpers
type Handler struct {
	store     Store
	perf      PerformanceSource
	perfCache *cache.TTL[*models.TeamPerformanceSnapshot]
	wsHub     *ws.Hub
	config    *config.Config
	startTime time.Time
}

// teamPerformanceCacheTTL bounds how often REST polling recomputes the snapshot.
const teamPerformanceCacheTTL = 5 * time.Second

// NewHandler creates a new API handler. wsHub may be nil, in which case
// the WebSocket endpoint answers 503.
func NewHandler(store Store, perf PerformanceSource, wsHub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		perf:      perf,
		perfCache: cache.New[*models.TeamPerformanceSnapshot](teamPerformanceCacheTTL),
		wsHub:     wsHub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins against the
// configured CORS origins.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin; an empty one would bypass the check.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", logging.SanitizeValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket upgrades the request and hands the connection to the hub.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	client.Start()
}
