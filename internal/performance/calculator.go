// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package performance

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/taskpulse/internal/logging"
	"github.com/tomtom215/taskpulse/internal/metrics"
	"github.com/tomtom215/taskpulse/internal/models"
)

// Score weights, in percent of the composite score.
const (
	weightTasksCompleted = 40
	weightOnTime         = 30
	weightComments       = 15
	weightCollaboration  = 15

	commentMultiplier = 10
	componentCap      = 100

	// defaultOnTimeRate applies to members with no assigned tasks.
	defaultOnTimeRate = 100

	defaultConcurrency = 8
)

// Store is the data access the calculator needs.
type Store interface {
	ListTeamMembers(ctx context.Context) ([]models.User, error)
	CountCompletedTasks(ctx context.Context, userID int64) (int, error)
	CountTotalTasks(ctx context.Context, userID int64) (int, error)
	CountOnTimeCompleted(ctx context.Context, userID int64) (int, error)
	CountComments(ctx context.Context, userID int64) (int, error)
	CountActivities(ctx context.Context, userID int64) (int, error)
}

// MemberCounts are the raw aggregates for one team member.
type MemberCounts struct {
	TasksCompleted  int
	TotalAssigned   int
	OnTimeCompleted int
	Comments        int
	Activities      int
}

// ComputeMetrics applies the scoring formulae to raw counts.
func ComputeMetrics(c MemberCounts) models.PerformanceMetrics {
	onTime := defaultOnTimeRate
	if c.TotalAssigned > 0 {
		onTime = roundInt(float64(c.OnTimeCompleted) / float64(c.TotalAssigned) * 100)
	}

	collaboration := min(componentCap, c.Activities)
	commentScore := min(c.Comments*commentMultiplier, componentCap)

	total := roundInt(float64(
		c.TasksCompleted*weightTasksCompleted+
			onTime*weightOnTime+
			commentScore*weightComments+
			collaboration*weightCollaboration,
	) / 100)

	return models.PerformanceMetrics{
		TasksCompleted:     c.TasksCompleted,
		OnTimeCompletion:   onTime,
		DocumentComments:   c.Comments,
		CollaborationScore: collaboration,
		TotalScore:         total,
	}
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

// Calculator builds team performance snapshots from a Store.
type Calculator struct {
	store       Store
	concurrency int
	now         func() time.Time
}

// NewCalculator creates a calculator that queries at most concurrency
// members at a time. Values below 1 use a default.
func NewCalculator(store Store, concurrency int) *Calculator {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Calculator{
		store:       store,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Compute returns a snapshot with one entry per team member whose queries
// succeeded, in the order the store listed them.
func (c *Calculator) Compute(ctx context.Context) (*models.TeamPerformanceSnapshot, error) {
	start := time.Now()

	members, err := c.store.ListTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	results := make([]*models.TeamMemberPerformance, len(members))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i := range members {
		member := members[i]
		g.Go(func() error {
			counts, err := c.memberCounts(ctx, member.ID)
			if err != nil {
				logging.Ctx(ctx).Warn().
					Err(err).
					Int64("user_id", member.ID).
					Str("username", logging.SanitizeValue(member.Username)).
					Msg("Omitting team member from performance snapshot")
				return nil
			}
			results[i] = &models.TeamMemberPerformance{
				ID:       member.ID,
				Username: member.Username,
				FullName: member.FullName,
				Role:     member.Role,
				Metrics:  ComputeMetrics(counts),
			}
			return nil
		})
	}
	_ = g.Wait()

	snapshot := &models.TeamPerformanceSnapshot{
		Members:     make([]models.TeamMemberPerformance, 0, len(members)),
		GeneratedAt: c.now().UTC(),
	}
	for _, r := range results {
		if r != nil {
			snapshot.Members = append(snapshot.Members, *r)
		}
	}

	metrics.RecordPerformanceCompute(time.Since(start), len(members)-len(snapshot.Members))
	return snapshot, nil
}

// memberCounts runs the five aggregate queries for one member concurrently.
func (c *Calculator) memberCounts(ctx context.Context, userID int64) (MemberCounts, error) {
	var counts MemberCounts

	g, gctx := errgroup.WithContext(ctx)
	queries := []struct {
		name string
		fn   func(context.Context, int64) (int, error)
		dst  *int
	}{
		{"completed tasks", c.store.CountCompletedTasks, &counts.TasksCompleted},
		{"total tasks", c.store.CountTotalTasks, &counts.TotalAssigned},
		{"on-time tasks", c.store.CountOnTimeCompleted, &counts.OnTimeCompleted},
		{"comments", c.store.CountComments, &counts.Comments},
		{"activities", c.store.CountActivities, &counts.Activities},
	}
	for _, q := range queries {
		g.Go(func() error {
			n, err := q.fn(gctx, userID)
			if err != nil {
				return fmt.Errorf("%s: %w", q.name, err)
			}
			*q.dst = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return MemberCounts{}, err
	}
	return counts, nil
}
