// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

// Package database provides the DuckDB-backed data store for TaskPulse.
//
// # Overview
//
// DB wraps a database/sql handle opened with the duckdb-go driver. It owns the
// schema and exposes the operations used by the realtime hub, the team
// performance calculator and the REST API.
//
// Files:
//   - database.go: connection lifecycle (New, Ping, Checkpoint, Close)
//   - database_schema.go: tables, sequences and indexes
//   - database_connection.go: pool settings and error classification
//   - tasks.go: task reads, the atomic status update, activity records
//   - users.go: users and document comments
//   - performance_queries.go: per-member aggregate counts
//   - seed.go: demo data for empty databases
//
// # Concurrency
//
// DuckDB uses optimistic concurrency control. Two writers touching the same
// row in overlapping transactions make one of them fail with a conflict;
// UpdateTaskStatus retries such conflicts so that concurrent status changes
// resolve as last write wins.
//
// # Metrics
//
// Every query reports its duration and errors through metrics.RecordDBQuery.
package database
