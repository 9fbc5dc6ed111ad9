// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/taskpulse/internal/database/query"
	"github.com/tomtom215/taskpulse/internal/models"
)

// Task errors
var (
	ErrTaskNotFound = errors.New("task not found")
)

const (
	defaultTaskListLimit = 100
	maxTaskListLimit     = 500
)

const taskColumns = `id, title, description, status, priority, deadline, completed_at,
	assigned_to, created_by, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		task        models.Task
		status      string
		priority    string
		deadline    sql.NullTime
		completedAt sql.NullTime
		assignedTo  sql.NullInt64
	)

	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &status, &priority,
		&deadline, &completedAt, &assignedTo, &task.CreatedBy,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = models.TaskStatus(status)
	task.Priority = models.TaskPriority(priority)
	if deadline.Valid {
		t := deadline.Time.UTC()
		task.Deadline = &t
	}
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		task.CompletedAt = &t
	}
	if assignedTo.Valid {
		id := assignedTo.Int64
		task.AssignedTo = &id
	}
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return &task, nil
}

// utcPtr normalizes an optional timestamp for storage.
func utcPtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// GetTask returns the task with the given id, or ErrTaskNotFound.
func (db *DB) GetTask(ctx context.Context, id int64) (task *models.Task, err error) {
	start := time.Now()
	defer func() { track("SELECT", "tasks", start, err) }()
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err = scanTask(row)
	if isNoRows(err) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return task, nil
}

// UpdateTaskStatus sets status, completion and update timestamps in a single
// UPDATE ... RETURNING statement and returns the updated row. A nil
// completedAt clears the column. Concurrent writers resolve as last write wins.
func (db *DB) UpdateTaskStatus(ctx context.Context, id int64, status models.TaskStatus, completedAt *time.Time, updatedAt time.Time) (task *models.Task, err error) {
	start := time.Now()
	defer func() { track("UPDATE", "tasks", start, err) }()
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stmt := `UPDATE tasks
		SET status = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
		RETURNING ` + taskColumns

	err = db.withConflictRetry(ctx, "update_task_status", func() error {
		row := db.conn.QueryRowContext(ctx, stmt, string(status), utcPtr(completedAt), updatedAt.UTC(), id)
		var scanErr error
		task, scanErr = scanTask(row)
		return scanErr
	})
	if isNoRows(err) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return task, nil
}

// InsertTaskActivity appends an audit record for a task.
func (db *DB) InsertTaskActivity(ctx context.Context, taskID, userID int64, action string, createdAt time.Time) (activity *models.TaskActivity, err error) {
	start := time.Now()
	defer func() { track("INSERT", "task_activities", start, err) }()
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	activity = &models.TaskActivity{
		TaskID: taskID,
		UserID: userID,
		Action: action,
	}
	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO task_activities (task_id, user_id, action, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at`,
		taskID, userID, action, createdAt.UTC(),
	).Scan(&activity.ID, &activity.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert activity for task %d: %w", taskID, err)
	}
	activity.CreatedAt = activity.CreatedAt.UTC()
	return activity, nil
}

// ListTaskActivities returns a task's activity records, oldest first.
func (db *DB) ListTaskActivities(ctx context.Context, taskID int64) (activities []models.TaskActivity, err error) {
	start := time.Now()
	defer func() { track("SELECT", "task_activities", start, err) }()
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, task_id, user_id, action, created_at
		FROM task_activities WHERE task_id = ?
		ORDER BY created_at, id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities for task %d: %w", taskID, err)
	}
	defer closeWithLog(rows, "rows")

	activities = []models.TaskActivity{}
	for rows.Next() {
		var a models.TaskActivity
		if err = rows.Scan(&a.ID, &a.TaskID, &a.UserID, &a.Action, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.CreatedAt = a.CreatedAt.UTC()
		activities = append(activities, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return activities, nil
}

// ListTasks returns tasks matching filter ordered by id.
func (db *DB) ListTasks(ctx context.Context, filter models.TaskFilter) (tasks []models.Task, err error) {
	start := time.Now()
	defer func() { track("SELECT", "tasks", start, err) }()
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	statuses := make([]string, len(filter.Statuses))
	for i, s := range filter.Statuses {
		statuses[i] = string(s)
	}

	whereClause, args := query.NewWhereBuilder().
		AddStatuses(statuses).
		AddAssignee(filter.AssignedTo).
		AddDeadlineBefore(filter.DeadlineBefore).
		BuildWithPrefix()

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultTaskListLimit
	}
	if limit > maxTaskListLimit {
		limit = maxTaskListLimit
	}
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks `+whereClause+` ORDER BY id LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer closeWithLog(rows, "rows")

	tasks = []models.Task{}
	for rows.Next() {
		var task *models.Task
		if task, err = scanTask(rows); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask inserts a task and fills in its id and timestamps.
func (db *DB) CreateTask(ctx context.Context, task *models.Task) (err error) {
	start := time.Now()
	defer func() { track("INSERT", "tasks", start, err) }()
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	var assignedTo interface{}
	if task.AssignedTo != nil {
		assignedTo = *task.AssignedTo
	}

	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO tasks (title, description, status, priority, deadline, completed_at,
			assigned_to, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		task.Title, task.Description, string(task.Status), string(task.Priority),
		utcPtr(task.Deadline), utcPtr(task.CompletedAt), assignedTo, task.CreatedBy,
		task.CreatedAt.UTC(), task.UpdatedAt.UTC(),
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}
