// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package models

import "time"

// PerformanceMetrics are the derived leaderboard figures for one team member.
type PerformanceMetrics struct {
	TasksCompleted     int `json:"tasksCompleted"`
	OnTimeCompletion   int `json:"onTimeCompletion"`
	DocumentComments   int `json:"documentComments"`
	CollaborationScore int `json:"collaborationScore"`
	TotalScore         int `json:"totalScore"`
}

// TeamMemberPerformance is one leaderboard row.
type TeamMemberPerformance struct {
	ID       int64              `json:"id"`
	Username string             `json:"username"`
	FullName string             `json:"fullName"`
	Role     UserRole           `json:"role"`
	Metrics  PerformanceMetrics `json:"metrics"`
}

// TeamPerformanceSnapshot is a point-in-time leaderboard. It is recomputed
// on demand and never persisted.
type TeamPerformanceSnapshot struct {
	Members     []TeamMemberPerformance `json:"members"`
	GeneratedAt time.Time               `json:"generatedAt"`
}
