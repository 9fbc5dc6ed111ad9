// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package models

import "time"

// UserRole controls which users appear on the team leaderboard.
type UserRole string

const (
	RoleTeamMember UserRole = "team_member"
	RoleManager    UserRole = "manager"
	RoleAdmin      UserRole = "admin"
)

// User is an account known to the data store.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// DocumentComment is a comment left on a shared document. Only its author
// matters to the hub, which counts comments per user.
type DocumentComment struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	DocumentID int64     `json:"documentId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
