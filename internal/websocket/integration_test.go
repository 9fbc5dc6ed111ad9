// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package websocket

import (
	"context"
	"testing"

	"github.com/tomtom215/taskpulse/internal/config"
	"github.com/tomtom215/taskpulse/internal/database"
	"github.com/tomtom215/taskpulse/internal/models"
	"github.com/tomtom215/taskpulse/internal/performance"
)

func setupSeededDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{
		Path:                   ":memory:",
		MaxMemory:              "512MB",
		Threads:                2,
		PreserveInsertionOrder: true,
	})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.SeedDemoData(context.Background()); err != nil {
		t.Fatalf("SeedDemoData() error = %v", err)
	}
	return db
}

func TestIntegration_DuckDBHub(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping DuckDB integration test in short mode")
	}

	db := setupSeededDB(t)
	ctx := context.Background()

	members, err := db.ListTeamMembers(ctx)
	if err != nil {
		t.Fatalf("ListTeamMembers() error = %v", err)
	}
	pending, err := db.ListTasks(ctx, models.TaskFilter{Statuses: []models.TaskStatus{models.TaskStatusPending}})
	if err != nil || len(pending) == 0 {
		t.Fatalf("ListTasks(pending) = %d tasks, err %v", len(pending), err)
	}
	task := pending[0]

	hub := NewHub(db, performance.NewCalculator(db, 4), nil)
	server := newTestServer(t, hub)

	actor := members[0]
	sender := connect(t, server, actor.ID, actor.Username)
	subscriber := connect(t, server, members[1].ID, members[1].Username)

	t.Run("subscribe delivers one entry per team member", func(t *testing.T) {
		writeJSON(t, subscriber, map[string]string{"type": MessageTypeSubscribeTeamPerformance})
		snap := readMessage(t, subscriber)
		if snap.Type != MessageTypeTeamPerformance {
			t.Fatalf("got %q", snap.Type)
		}
		if len(snap.Members) != len(members) {
			t.Fatalf("members = %d, want %d", len(snap.Members), len(members))
		}
		for i, m := range snap.Members {
			if m.ID != members[i].ID {
				t.Errorf("member[%d] = %d, want %d", i, m.ID, members[i].ID)
			}
			if m.Role != models.RoleTeamMember {
				t.Errorf("member %s has role %s", m.Username, m.Role)
			}
		}

		sent, err := hub.TriggerTeamPerformance(ctx)
		if err != nil || sent != 1 {
			t.Fatalf("TriggerTeamPerformance() = %d, %v", sent, err)
		}
		if again := readMessage(t, subscriber); len(again.Members) != len(members) {
			t.Errorf("manual trigger members = %d", len(again.Members))
		}
	})

	t.Run("task update persists and records activity", func(t *testing.T) {
		writeJSON(t, sender, taskUpdate(task.ID, models.TaskStatusCompleted))

		success := readUntil(t, sender, MessageTypeTaskUpdateSuccess, MessageTypeError)
		if success.Type != MessageTypeTaskUpdateSuccess {
			t.Fatalf("got %s %s: %s", success.Type, success.Code, success.Message)
		}
		if success.Task.CompletedAt == nil {
			t.Error("completedAt should be set")
		}

		event := readMessage(t, subscriber)
		if event.Type != MessageTypeTaskUpdate || event.Task.ID != task.ID {
			t.Fatalf("subscriber got %q for task %v", event.Type, event.Task)
		}

		stored, err := db.GetTask(ctx, task.ID)
		if err != nil {
			t.Fatalf("GetTask() error = %v", err)
		}
		if stored.Status != models.TaskStatusCompleted || stored.CompletedAt == nil {
			t.Errorf("stored task = %s, completedAt %v", stored.Status, stored.CompletedAt)
		}

		activities, err := db.ListTaskActivities(ctx, task.ID)
		if err != nil {
			t.Fatalf("ListTaskActivities() error = %v", err)
		}
		if len(activities) != 1 {
			t.Fatalf("activities = %d, want 1", len(activities))
		}
		if activities[0].UserID != actor.ID || activities[0].Action != "status changed from pending to completed" {
			t.Errorf("activity = %+v", activities[0])
		}
	})

	t.Run("reopening clears completedAt", func(t *testing.T) {
		writeJSON(t, sender, taskUpdate(task.ID, models.TaskStatusPending))
		success := readUntil(t, sender, MessageTypeTaskUpdateSuccess, MessageTypeError)
		if success.Type != MessageTypeTaskUpdateSuccess {
			t.Fatalf("got %s: %s", success.Code, success.Message)
		}
		readMessage(t, subscriber)

		stored, err := db.GetTask(ctx, task.ID)
		if err != nil {
			t.Fatalf("GetTask() error = %v", err)
		}
		if stored.CompletedAt != nil {
			t.Errorf("completedAt = %v, want nil", stored.CompletedAt)
		}
	})

	t.Run("unknown task", func(t *testing.T) {
		writeJSON(t, sender, taskUpdate(99999, models.TaskStatusCompleted))
		expectError(t, sender, ErrCodeTaskNotFound)
	})
}
