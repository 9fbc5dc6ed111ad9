// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/taskpulse/internal/models"
)

// User errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameConflict = errors.New("username already exists")
)

// isUniqueConstraintError checks for DuckDB unique/primary key violations
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate key") || strings.Contains(msg, "unique constraint")
}

// GetUser returns the user with the given id, or ErrUserNotFound.
func (db *DB) GetUser(ctx context.Context, id int64) (user *models.User, err error) {
	start := time.Now()
	defer func() { track("SELECT", "users", start, err) }()
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var u models.User
	var role string
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, username, full_name, role, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.FullName, &role, &u.CreatedAt)
	if isNoRows(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	u.Role = models.UserRole(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// ListTeamMembers returns every user with the team_member role ordered by id.
func (db *DB) ListTeamMembers(ctx context.Context) (users []models.User, err error) {
	start := time.Now()
	defer func() { track("SELECT", "users", start, err) }()
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, full_name, role, created_at
		FROM users WHERE role = ?
		ORDER BY id`, string(models.RoleTeamMember))
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer closeWithLog(rows, "rows")

	users = []models.User{}
	for rows.Next() {
		var u models.User
		var role string
		if err = rows.Scan(&u.ID, &u.Username, &u.FullName, &role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Role = models.UserRole(role)
		u.CreatedAt = u.CreatedAt.UTC()
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// CreateUser inserts a user and fills in its id.
func (db *DB) CreateUser(ctx context.Context, user *models.User) (err error) {
	start := time.Now()
	defer func() { track("INSERT", "users", start, err) }()
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if user.Role == "" {
		user.Role = models.RoleTeamMember
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO users (username, full_name, role, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		user.Username, user.FullName, string(user.Role), user.CreatedAt.UTC(),
	).Scan(&user.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUsernameConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// CreateComment inserts a document comment and fills in its id.
func (db *DB) CreateComment(ctx context.Context, comment *models.DocumentComment) (err error) {
	start := time.Now()
	defer func() { track("INSERT", "document_comments", start, err) }()
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO document_comments (user_id, document_id, content, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		comment.UserID, comment.DocumentID, comment.Content, comment.CreatedAt.UTC(),
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}
