// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package websocket

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/taskpulse/internal/models"
)

// Inbound message types
const (
	MessageTypeSubscribeTeamPerformance = "subscribe_team_performance"
	MessageTypeTaskUpdate               = "task_update"
)

// Outbound message types
const (
	MessageTypeConnected         = "connected"
	MessageTypeError             = "error"
	MessageTypeTaskUpdateSuccess = "task_update_success"
	MessageTypeTeamPerformance   = "team_performance"
)

// Error codes carried by outbound error messages.
const (
	ErrCodeMessageParse            = "MESSAGE_PARSE_ERROR"
	ErrCodeTaskNotFound            = "TASK_NOT_FOUND"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeDatabase                = "DATABASE_ERROR"
)

// Handshake is the first message every connection must send.
type Handshake struct {
	UserID   int64  `json:"userId" validate:"required,gt=0"`
	Username string `json:"username" validate:"required"`
}

// envelope reads only the type tag of an inbound message.
type envelope struct {
	Type string `json:"type"`
}

// TaskUpdateRequest asks for a task status change.
type TaskUpdateRequest struct {
	Type    string      `json:"type"`
	TaskID  int64       `json:"taskId" validate:"required,gt=0"`
	Changes TaskChanges `json:"changes"`
}

// TaskChanges holds the requested status and optional client timestamps.
// Timestamps that are absent or not RFC3339 fall back to the server clock.
type TaskChanges struct {
	Status      models.TaskStatus `json:"status" validate:"required,task_status"`
	CompletedAt *string           `json:"completedAt"`
	UpdatedAt   *string           `json:"updatedAt"`
}

// ConnectedMessage acknowledges a successful handshake.
type ConnectedMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ErrorMessage reports a failure to the sender only.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ActivityUser identifies the actor of an activity.
type ActivityUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ActivityPayload is a task activity enriched with its actor.
type ActivityPayload struct {
	ID        int64        `json:"id"`
	Action    string       `json:"action"`
	CreatedAt time.Time    `json:"createdAt"`
	User      ActivityUser `json:"user"`
}

// TaskUpdateEvent is sent as task_update to other connections and as
// task_update_success to the sender.
type TaskUpdateEvent struct {
	Type     string          `json:"type"`
	Task     *models.Task    `json:"task"`
	Activity ActivityPayload `json:"activity"`
}

// TeamPerformanceMessage carries a full leaderboard snapshot.
type TeamPerformanceMessage struct {
	Type        string                         `json:"type"`
	Members     []models.TeamMemberPerformance `json:"members"`
	GeneratedAt time.Time                      `json:"generatedAt"`
}

func newErrorMessage(code, message string) ErrorMessage {
	return ErrorMessage{Type: MessageTypeError, Code: code, Message: message}
}

// MarshalMessage converts a message to JSON
func MarshalMessage(msg interface{}) ([]byte, error) {
	return json.Marshal(msg)
}
