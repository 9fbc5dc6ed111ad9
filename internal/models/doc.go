// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

/*
Package models defines the data structures shared across TaskPulse.

Key Components:

  - Task, TaskStatus, TaskActivity: rows of the tasks and task_activities tables
  - User, UserRole, DocumentComment: people and the comments they author
  - TeamMemberPerformance, PerformanceMetrics: one leaderboard entry
  - APIResponse, APIError: the REST response envelope

JSON field names are camelCase because the same structs are sent over the
WebSocket channel and the REST API.
*/
package models
