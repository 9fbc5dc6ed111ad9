// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package models

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Task statuses. The set is closed: any other value stored in the
// tasks table is treated as invalid by the transition rules.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// String implements fmt.Stringer.
func (s TaskStatus) String() string {
	return string(s)
}

// TaskPriority is an informational ranking shown by clients.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task is a unit of work assigned to a team member.
//
// CompletedAt is only ever set while Status is completed. Deadline and
// AssignedTo are optional.
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Deadline    *time.Time   `json:"deadline"`
	CompletedAt *time.Time   `json:"completedAt"`
	AssignedTo  *int64       `json:"assignedTo"`
	CreatedBy   int64        `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TaskActivity is an immutable audit trail entry for a task.
type TaskActivity struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"taskId"`
	UserID    int64     `json:"userId"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskFilter narrows task listings. Zero values mean "no filter".
type TaskFilter struct {
	Statuses       []TaskStatus
	AssignedTo     int64
	DeadlineBefore *time.Time
	Limit          int
}
