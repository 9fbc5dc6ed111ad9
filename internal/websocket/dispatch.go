// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package websocket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/taskpulse/internal/database"
	"github.com/tomtom215/taskpulse/internal/logging"
	"github.com/tomtom215/taskpulse/internal/metrics"
	"github.com/tomtom215/taskpulse/internal/models"
	"github.com/tomtom215/taskpulse/internal/tasks"
	"github.com/tomtom215/taskpulse/internal/validation"
)

// maxTypeLabelLen bounds the unknown message type echoed back to clients.
const maxTypeLabelLen = 64

// handleMessage dispatches one inbound message from an authenticated client.
// Errors are reported to the sender only and never close the connection.
func (h *Hub) handleMessage(c *Client, data []byte) {
	// Accepted messages run to completion even if the connection closes.
	ctx := logging.ContextWithNewCorrelationID(context.WithoutCancel(c.ctx))

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		metrics.RecordWSReceived("invalid")
		h.replyError(ctx, c, ErrCodeMessageParse, "Invalid message format")
		return
	}

	switch env.Type {
	case MessageTypeSubscribeTeamPerformance:
		metrics.RecordWSReceived(env.Type)
		h.handleSubscribe(ctx, c)
	case MessageTypeTaskUpdate:
		metrics.RecordWSReceived(env.Type)
		h.handleTaskUpdate(ctx, c, data)
	default:
		metrics.RecordWSReceived("unknown")
		typ := env.Type
		if len(typ) > maxTypeLabelLen {
			typ = typ[:maxTypeLabelLen]
		}
		h.replyError(ctx, c, ErrCodeMessageParse, fmt.Sprintf("Unknown message type: %q", typ))
	}
}

func (h *Hub) replyError(ctx context.Context, c *Client, code, message string) {
	metrics.RecordWSError(code)
	logging.Ctx(ctx).Debug().Str("code", code).Str("message", message).Msg("sending error reply")
	h.sendTo(c, MessageTypeError, newErrorMessage(code, message))
}

// handleSubscribe adds the sender to the subscription set and pushes a
// fresh snapshot to every subscriber.
func (h *Hub) handleSubscribe(ctx context.Context, c *Client) {
	h.subscribe(c)

	if _, err := h.broadcastTeamPerformance(ctx, triggerSubscribe); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("team performance broadcast on subscribe failed")
		h.replyError(ctx, c, ErrCodeDatabase, "Failed to compute team performance")
	}
}

// handleTaskUpdate validates and applies a status change, records the
// activity, then notifies the other clients and finally the sender.
func (h *Hub) handleTaskUpdate(ctx context.Context, c *Client, data []byte) {
	var req TaskUpdateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.replyError(ctx, c, ErrCodeMessageParse, "Invalid task_update message")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		h.replyError(ctx, c, ErrCodeMessageParse, verr.Error())
		return
	}

	log := logging.Ctx(ctx).With().
		Int64("task_id", req.TaskID).
		Int64("user_id", c.userID).
		Logger()

	task, err := h.store.GetTask(ctx, req.TaskID)
	if isTaskNotFound(task, err) {
		h.replyError(ctx, c, ErrCodeTaskNotFound, fmt.Sprintf("Task %d not found", req.TaskID))
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load task")
		h.replyError(ctx, c, ErrCodeDatabase, "Failed to update task")
		return
	}

	from, to := task.Status, req.Changes.Status
	if err := tasks.ValidateTransition(from, to); err != nil {
		metrics.RecordTaskTransition(string(from), string(to), false)
		h.replyError(ctx, c, ErrCodeInvalidStatusTransition, err.Error())
		return
	}

	now := h.now().UTC()
	updatedAt := parseTimestamp(req.Changes.UpdatedAt, now)
	var completedAt *time.Time
	if to == models.TaskStatusCompleted {
		t := parseTimestamp(req.Changes.CompletedAt, now)
		completedAt = &t
	}

	updated, err := h.store.UpdateTaskStatus(ctx, task.ID, to, completedAt, updatedAt)
	if isTaskNotFound(updated, err) {
		h.replyError(ctx, c, ErrCodeTaskNotFound, fmt.Sprintf("Task %d not found", req.TaskID))
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to update task status")
		h.replyError(ctx, c, ErrCodeDatabase, "Failed to update task")
		return
	}

	activity, err := h.store.InsertTaskActivity(ctx, task.ID, c.userID, tasks.ActivityDescription(from, to), now)
	if err != nil {
		log.Error().Err(err).Msg("failed to record task activity")
		h.replyError(ctx, c, ErrCodeDatabase, "Failed to update task")
		return
	}
	metrics.RecordTaskTransition(string(from), string(to), true)

	event := TaskUpdateEvent{
		Type: MessageTypeTaskUpdate,
		Task: updated,
		Activity: ActivityPayload{
			ID:        activity.ID,
			Action:    activity.Action,
			CreatedAt: activity.CreatedAt,
			User:      ActivityUser{ID: c.userID, Username: c.username},
		},
	}
	recipients := h.broadcastExcept(c, MessageTypeTaskUpdate, event)

	event.Type = MessageTypeTaskUpdateSuccess
	h.sendTo(c, MessageTypeTaskUpdateSuccess, event)

	log.Info().
		Str("from", string(from)).
		Str("to", string(to)).
		Int("recipients", recipients).
		Msg("task status updated")
}

func isTaskNotFound(task *models.Task, err error) bool {
	if err != nil {
		return errors.Is(err, database.ErrTaskNotFound)
	}
	return task == nil
}

// parseTimestamp returns the RFC3339 value in v, or fallback when v is
// absent or unparseable.
func parseTimestamp(v *string, fallback time.Time) time.Time {
	if v == nil || *v == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return fallback
	}
	return t.UTC()
}
