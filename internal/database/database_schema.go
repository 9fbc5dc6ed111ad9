// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

/*
database_schema.go - Database Schema Management

Tables:
  - users: team members, managers and admins
  - tasks: work items with status, deadline and completion timestamp
  - task_activities: append-only audit trail of task changes
  - document_comments: comments authored on shared documents

Identifiers come from sequences. Foreign keys are not declared: DuckDB
rejects updates to rows that are referenced by a foreign key, and tasks are
updated in place on every status change. Referential checks live in the
application instead.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the sequences and tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// createIndexes creates indexes on lookup columns
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range indexCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}

var tableCreationQueries = []string{
	`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS tasks_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS task_activities_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS document_comments_id_seq START 1`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
		username VARCHAR NOT NULL UNIQUE,
		full_name VARCHAR NOT NULL,
		role VARCHAR NOT NULL DEFAULT 'team_member',
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id BIGINT PRIMARY KEY DEFAULT nextval('tasks_id_seq'),
		title VARCHAR NOT NULL,
		description VARCHAR NOT NULL DEFAULT '',
		status VARCHAR NOT NULL DEFAULT 'pending',
		priority VARCHAR NOT NULL DEFAULT 'medium',
		deadline TIMESTAMP,
		completed_at TIMESTAMP,
		assigned_to BIGINT,
		created_by BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,

	`CREATE TABLE IF NOT EXISTS task_activities (
		id BIGINT PRIMARY KEY DEFAULT nextval('task_activities_id_seq'),
		task_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		action VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,

	`CREATE TABLE IF NOT EXISTS document_comments (
		id BIGINT PRIMARY KEY DEFAULT nextval('document_comments_id_seq'),
		user_id BIGINT NOT NULL,
		document_id BIGINT NOT NULL,
		content VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,
}

// Columns written by UpdateTaskStatus stay unindexed so updates remain in place.
var indexCreationQueries = []string{
	`CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assigned_to ON tasks(assigned_to)`,
	`CREATE INDEX IF NOT EXISTS idx_task_activities_task_id ON task_activities(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_task_activities_user_id ON task_activities(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_document_comments_user_id ON document_comments(user_id)`,
}
