// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

/*
Package main is the entry point for the TaskPulse server.

TaskPulse is a team task-management backend. Its centre is the realtime
update hub: browsers connect to /api/v1/ws, identify themselves with a
handshake message, push task status changes that are validated against the
transition table and persisted in DuckDB, and receive a team performance
leaderboard every 30 seconds once subscribed.

# Application Architecture

	RootSupervisor ("taskpulse")
	├── DataSupervisor ("data-layer")
	│   └── DuckDB checkpoint service
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocket hub (performance timer)
	└── APISupervisor ("api-layer")
	    └── HTTP server (chi router)

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Database: DuckDB schema, optional demo data
 4. Performance calculator and WebSocket hub
 5. REST handlers and chi router
 6. Supervisor tree, then block until SIGINT/SIGTERM

# Configuration

Common environment variables:

	HTTP_PORT=3000
	DUCKDB_PATH=/data/taskpulse.duckdb
	SEED_DEMO_DATA=true
	WS_PERFORMANCE_INTERVAL=30s
	CORS_ORIGINS=http://localhost:5173
	LOG_LEVEL=debug LOG_FORMAT=console

# Signal Handling

On SIGINT or SIGTERM the tree is canceled: the hub stops its timer and
closes every connection, the HTTP server drains in-flight requests, and the
database is closed last.
*/
package main
