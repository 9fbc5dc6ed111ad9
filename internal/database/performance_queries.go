// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package database

import (
	"context"
	"fmt"
	"time"
)

// Per-member aggregate queries used by the team performance calculator.
// Each is an independent statement so callers may run them concurrently.
const (
	countCompletedTasksSQL = `SELECT COUNT(*) FROM tasks
		WHERE assigned_to = ? AND status = 'completed'`

	countTotalTasksSQL = `SELECT COUNT(*) FROM tasks
		WHERE assigned_to = ?`

	// A task without a deadline or completion time is never on time.
	countOnTimeCompletedSQL = `SELECT COUNT(*) FROM tasks
		WHERE assigned_to = ? AND status = 'completed'
		AND completed_at IS NOT NULL AND deadline IS NOT NULL
		AND completed_at <= deadline`

	countCommentsSQL = `SELECT COUNT(*) FROM document_comments
		WHERE user_id = ?`

	countActivitiesSQL = `SELECT COUNT(*) FROM task_activities
		WHERE user_id = ?`
)

func (db *DB) countForUser(ctx context.Context, table, stmt string, userID int64) (n int, err error) {
	start := time.Now()
	defer func() { track("COUNT", table, start, err) }()
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err = db.conn.QueryRowContext(ctx, stmt, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s for user %d: %w", table, userID, err)
	}
	return n, nil
}

// CountCompletedTasks counts completed tasks assigned to the user.
func (db *DB) CountCompletedTasks(ctx context.Context, userID int64) (int, error) {
	return db.countForUser(ctx, "tasks", countCompletedTasksSQL, userID)
}

// CountTotalTasks counts every task assigned to the user.
func (db *DB) CountTotalTasks(ctx context.Context, userID int64) (int, error) {
	return db.countForUser(ctx, "tasks", countTotalTasksSQL, userID)
}

// CountOnTimeCompleted counts completed tasks finished at or before their deadline.
func (db *DB) CountOnTimeCompleted(ctx context.Context, userID int64) (int, error) {
	return db.countForUser(ctx, "tasks", countOnTimeCompletedSQL, userID)
}

// CountComments counts document comments authored by the user.
func (db *DB) CountComments(ctx context.Context, userID int64) (int, error) {
	return db.countForUser(ctx, "document_comments", countCommentsSQL, userID)
}

// CountActivities counts task activity records attributed to the user.
func (db *DB) CountActivities(ctx context.Context, userID int64) (int, error) {
	return db.countForUser(ctx, "task_activities", countActivitiesSQL, userID)
}
