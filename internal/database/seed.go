// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/taskpulse/internal/logging"
	"github.com/tomtom215/taskpulse/internal/models"
)

type seedUser struct {
	username string
	fullName string
	role     models.UserRole
}

type seedTask struct {
	title     string
	status    models.TaskStatus
	priority  models.TaskPriority
	assignee  int // index into demoUsers
	deadline  time.Duration
	completed time.Duration // offset from now; used only when status is completed
}

var demoUsers = []seedUser{
	{"mlead", "Morgan Lead", models.RoleManager},
	{"asmith", "Alex Smith", models.RoleTeamMember},
	{"jdoe", "Jordan Doe", models.RoleTeamMember},
	{"rkim", "Riley Kim", models.RoleTeamMember},
}

var demoTasks = []seedTask{
	{"Draft onboarding guide", models.TaskStatusCompleted, models.TaskPriorityHigh, 1, -48 * time.Hour, -72 * time.Hour},
	{"Review Q3 budget", models.TaskStatusCompleted, models.TaskPriorityMedium, 1, -24 * time.Hour, -12 * time.Hour},
	{"Fix login redirect", models.TaskStatusInProgress, models.TaskPriorityHigh, 2, 24 * time.Hour, 0},
	{"Update team wiki", models.TaskStatusPending, models.TaskPriorityLow, 2, 72 * time.Hour, 0},
	{"Prepare sprint demo", models.TaskStatusCompleted, models.TaskPriorityMedium, 3, 48 * time.Hour, -1 * time.Hour},
	{"Archive old tickets", models.TaskStatusCancelled, models.TaskPriorityLow, 3, 96 * time.Hour, 0},
}

// SeedDemoData inserts demo users, tasks and comments into an empty database.
// It does nothing when any user already exists.
func (db *DB) SeedDemoData(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { track("SEED", "users", start, err) }()
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var existing int
	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&existing); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if existing > 0 {
		logging.Debug().Int("users", existing).Msg("Skipping demo data, database is not empty")
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	userIDs := make([]int64, len(demoUsers))
	for i, u := range demoUsers {
		if err = tx.QueryRowContext(ctx,
			`INSERT INTO users (username, full_name, role, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
			u.username, u.fullName, string(u.role), now,
		).Scan(&userIDs[i]); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.username, err)
		}
	}

	manager := userIDs[0]
	for _, st := range demoTasks {
		var completedAt interface{}
		if st.status == models.TaskStatusCompleted {
			completedAt = now.Add(st.completed)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO tasks (title, status, priority, deadline, completed_at, assigned_to, created_by, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			st.title, string(st.status), string(st.priority), now.Add(st.deadline), completedAt,
			userIDs[st.assignee], manager, now, now,
		); err != nil {
			return fmt.Errorf("failed to seed task %q: %w", st.title, err)
		}
	}

	for i, uid := range userIDs[1:] {
		for c := 0; c <= i; c++ {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO document_comments (user_id, document_id, content, created_at) VALUES (?, ?, ?, ?)`,
				uid, int64(c+1), fmt.Sprintf("Comment %d from %s", c+1, demoUsers[i+1].username), now,
			); err != nil {
				return fmt.Errorf("failed to seed comment: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logging.Info().
		Int("users", len(demoUsers)).
		Int("tasks", len(demoTasks)).
		Msg("Seeded demo data")
	return nil
}
