// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

// Package query provides SQL query building utilities for the database package.
//
// WhereBuilder collects parameterized conditions and joins them with AND:
//
//	wb := query.NewWhereBuilder()
//	wb.AddStatuses([]string{"pending", "in_progress"})
//	wb.AddAssignee(42)
//	whereClause, args := wb.Build()
//	// "status IN (?, ?) AND assigned_to = ?"
//	// [pending in_progress 42]
//
// Values are always bound as arguments; only column names and placeholders
// are written into the SQL text.
package query
