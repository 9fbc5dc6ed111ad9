// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

// Package tasks holds the task status transition rules.
//
// The transition table is fixed:
//
//	pending     -> in_progress, completed, cancelled
//	in_progress -> completed, cancelled, pending
//	completed   -> pending
//	cancelled   -> pending
//
// A transition that is not listed is rejected; nothing is ever coerced,
// including a transition to the task's current status.
package tasks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/taskpulse/internal/models"
)

// ErrInvalidStatus is returned when a status is not one of the known task statuses.
var ErrInvalidStatus = errors.New("invalid task status")

// transitions is ordered so the "valid transitions" list in error messages is stable.
var transitions = map[models.TaskStatus][]models.TaskStatus{
	models.TaskStatusPending:    {models.TaskStatusInProgress, models.TaskStatusCompleted, models.TaskStatusCancelled},
	models.TaskStatusInProgress: {models.TaskStatusCompleted, models.TaskStatusCancelled, models.TaskStatusPending},
	models.TaskStatusCompleted:  {models.TaskStatusPending},
	models.TaskStatusCancelled:  {models.TaskStatusPending},
}

// Statuses returns every known status in table order.
func Statuses() []models.TaskStatus {
	return []models.TaskStatus{
		models.TaskStatusPending,
		models.TaskStatusInProgress,
		models.TaskStatusCompleted,
		models.TaskStatusCancelled,
	}
}

// IsValidStatus reports whether s is a key of the transition table.
func IsValidStatus(s models.TaskStatus) bool {
	_, ok := transitions[s]
	return ok
}

// AllowedTransitions returns the statuses reachable from current.
// The returned slice is a copy and may be modified by the caller.
func AllowedTransitions(current models.TaskStatus) ([]models.TaskStatus, error) {
	next, ok := transitions[current]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, current)
	}
	out := make([]models.TaskStatus, len(next))
	copy(out, next)
	return out, nil
}

// TransitionError describes a rejected status change.
type TransitionError struct {
	From    models.TaskStatus
	To      models.TaskStatus
	Allowed []models.TaskStatus

	// unknownCurrent is set when From itself is not a known status.
	unknownCurrent bool
}

// Error returns the client-facing description of the rejection.
func (e *TransitionError) Error() string {
	if e.unknownCurrent {
		return fmt.Sprintf("Invalid current status: %s", e.From)
	}
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = string(s)
	}
	return fmt.Sprintf("Invalid status transition from %s to %s. Valid transitions: %s",
		e.From, e.To, strings.Join(names, ", "))
}

// Unwrap lets callers match an unknown current status with errors.Is(err, ErrInvalidStatus).
func (e *TransitionError) Unwrap() error {
	if e.unknownCurrent {
		return ErrInvalidStatus
	}
	return nil
}

// ValidateTransition returns nil when current -> next is listed in the
// transition table, and a *TransitionError otherwise.
func ValidateTransition(current, next models.TaskStatus) error {
	allowed, ok := transitions[current]
	if !ok {
		return &TransitionError{From: current, To: next, unknownCurrent: true}
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	out := make([]models.TaskStatus, len(allowed))
	copy(out, allowed)
	return &TransitionError{From: current, To: next, Allowed: out}
}

// ActivityDescription is the audit trail text recorded for a status change.
func ActivityDescription(from, to models.TaskStatus) string {
	return fmt.Sprintf("status changed from %s to %s", from, to)
}
