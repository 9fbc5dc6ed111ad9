// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/taskpulse/internal/database"
	"github.com/tomtom215/taskpulse/internal/models"
)

// ListTasksRequest holds the query parameters of GET /api/v1/tasks.
type ListTasksRequest struct {
	Statuses       []models.TaskStatus `json:"status" validate:"omitempty,dive,task_status"`
	AssignedTo     int64               `json:"assigned_to" validate:"gte=0"`
	DeadlineBefore string              `json:"deadline_before" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Limit          int                 `json:"limit" validate:"gte=0,lte=500"`
}

// parseListTasksRequest reads the query string. Non-numeric integers are
// reported as validation errors rather than silently defaulted.
func parseListTasksRequest(r *http.Request) (*ListTasksRequest, *models.APIError) {
	q := r.URL.Query()
	req := &ListTasksRequest{DeadlineBefore: q.Get("deadline_before")}

	for _, s := range parseCommaSeparated(q.Get("status")) {
		req.Statuses = append(req.Statuses, models.TaskStatus(s))
	}

	for _, p := range []struct {
		name string
		dst  func(int64)
	}{
		{"assigned_to", func(v int64) { req.AssignedTo = v }},
		{"limit", func(v int64) { req.Limit = int(v) }},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &models.APIError{
				Code:    "VALIDATION_ERROR",
				Message: p.name + " must be an integer",
			}
		}
		p.dst(v)
	}

	if apiErr := validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

func (req *ListTasksRequest) filter() models.TaskFilter {
	f := models.TaskFilter{
		Statuses:   req.Statuses,
		AssignedTo: req.AssignedTo,
		Limit:      req.Limit,
	}
	if req.DeadlineBefore != "" {
		// Format already checked by validation.
		if t, err := time.Parse(time.RFC3339, req.DeadlineBefore); err == nil {
			t = t.UTC()
			f.DeadlineBefore = &t
		}
	}
	return f
}

// ListTasks handles GET /api/v1/tasks.
//
// Query parameters:
//   - status: comma-separated statuses (pending, in_progress, completed, cancelled)
//   - assigned_to: user ID
//   - deadline_before: RFC3339 timestamp
//   - limit: 1-500, default 100
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, apiErr := parseListTasksRequest(r)
	if apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	tasks, err := h.store.ListTasks(r.Context(), req.filter())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list tasks", err)
		return
	}

	respondSuccess(w, tasks, start)
}

// GetTask handles GET /api/v1/tasks/{id}.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Task id must be a positive integer", nil)
		return
	}

	task, err := h.store.GetTask(r.Context(), id)
	if errors.Is(err, database.ErrTaskNotFound) {
		respondError(w, http.StatusNotFound, "TASK_NOT_FOUND", "Task not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load task", err)
		return
	}

	respondSuccess(w, task, start)
}

// TaskActivities handles GET /api/v1/tasks/{id}/activities.
func (h *Handler) TaskActivities(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Task id must be a positive integer", nil)
		return
	}

	if _, err := h.store.GetTask(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "TASK_NOT_FOUND", "Task not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load task", err)
		return
	}

	activities, err := h.store.ListTaskActivities(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list task activities", err)
		return
	}

	respondSuccess(w, activities, start)
}

// TeamPerformance handles GET /api/v1/team/performance. It returns the
// same snapshot the hub broadcasts to subscribers, cached for a few seconds.
func (h *Handler) TeamPerformance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	snapshot, hit, err := h.perfCache.GetOrLoad("team_performance", func() (*models.TeamPerformanceSnapshot, error) {
		return h.perf.Compute(r.Context())
	})
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute team performance", err)
		return
	}

	respondSuccess(w, snapshot, start)
}
