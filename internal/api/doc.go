// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

/*
Package api provides the HTTP layer for TaskPulse.

Routes:

  - GET /api/v1/health/live: liveness probe
  - GET /api/v1/health/ready: database ping and hub status
  - GET /api/v1/tasks: task list (status, assigned_to, deadline_before, limit)
  - GET /api/v1/tasks/{id}: one task
  - GET /api/v1/tasks/{id}/activities: the task's audit trail
  - GET /api/v1/team/performance: the team leaderboard snapshot
  - GET /api/v1/ws: WebSocket upgrade into the realtime hub
  - GET /metrics: Prometheus exposition

Every JSON response uses the models.APIResponse envelope. Errors carry a
machine-readable code and a message; internal error text is only logged.

Middleware, applied globally in order: request ID with logging context,
RealIP, Recoverer, CORS. The API group adds Prometheus instrumentation,
IP rate limiting (go-chi/httprate) and security headers. WebSocket upgrades
have their own rate limit and an Origin check against the configured CORS
origins.

Usage:

	handler := api.NewHandler(db, calc, hub, cfg)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
