// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built lazily and shared. Field names in
// error messages come from the struct's json tags, so a handshake missing its
// user id reports "userId is required" rather than the Go field name.
//
// Custom tags:
//   - task_status: the value is one of pending, in_progress, completed, cancelled
//
// Example:
//
//	type Handshake struct {
//	    UserID   int64  `json:"userId" validate:"required,gt=0"`
//	    Username string `json:"username" validate:"required"`
//	}
//
//	if verr := validation.ValidateStruct(&hs); verr != nil {
//	    return verr
//	}
package validation
