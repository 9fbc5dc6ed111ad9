// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

/*
Package config provides centralized configuration management for TaskPulse.

Configuration is loaded with koanf in three layers, each overriding the one
before it:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/taskpulse/config.yaml)
 3. Environment variables mapped through envTransformFunc

# Configuration Structure

  - ServerConfig: HTTP listener (host, port, timeout, environment)
  - DatabaseConfig: DuckDB path and tuning, demo data seeding
  - WebSocketConfig: hub timer interval, send buffer, inbound message rate
  - SecurityConfig: CORS origins and HTTP rate limits
  - LoggingConfig: zerolog level, format and caller reporting

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 3000)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development or production (default: development)

Database:
  - DUCKDB_PATH: Database file path (default: /data/taskpulse.duckdb)
  - DUCKDB_MAX_MEMORY: Memory limit (default: 1GB)
  - DUCKDB_THREADS: Worker threads, 0 for NumCPU
  - SEED_DEMO_DATA: Insert demo users and tasks into an empty database

WebSocket:
  - WS_PERFORMANCE_INTERVAL: Team performance broadcast interval (default: 30s)
  - WS_SEND_BUFFER: Per-connection outbound queue size (default: 256)
  - WS_MESSAGE_RATE: Inbound messages per second per connection (default: 20)
  - WS_MESSAGE_BURST: Inbound burst allowance (default: 40)
  - WS_PERFORMANCE_CONCURRENCY: Parallel member computations (default: 8)

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW / DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
