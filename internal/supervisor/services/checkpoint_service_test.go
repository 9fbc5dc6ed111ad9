// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

type stubCheckpointer struct {
	calls atomic.Int32
	err   error
}

func (c *stubCheckpointer) Checkpoint(ctx context.Context) error {
	c.calls.Add(1)
	return c.err
}

var _ suture.Service = (*CheckpointService)(nil)

func TestNewCheckpointService(t *testing.T) {
	db := &stubCheckpointer{}

	if svc := NewCheckpointService(db, time.Minute); svc.interval != time.Minute {
		t.Errorf("interval = %v, want 1m", svc.interval)
	}
	if svc := NewCheckpointService(db, 0); svc.interval != 5*time.Minute {
		t.Errorf("default interval = %v, want 5m", svc.interval)
	}
	if got := NewCheckpointService(db, 0).String(); got != "duckdb-checkpoint" {
		t.Errorf("String() = %q, want duckdb-checkpoint", got)
	}
}

func TestCheckpointService_Serve(t *testing.T) {
	t.Run("checkpoints on every tick", func(t *testing.T) {
		db := &stubCheckpointer{}
		svc := NewCheckpointService(db, 10*time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
		}
		if db.calls.Load() < 3 {
			t.Errorf("calls = %d, want at least 3", db.calls.Load())
		}
	})

	t.Run("keeps running after a failed checkpoint", func(t *testing.T) {
		db := &stubCheckpointer{err: errors.New("io error")}
		svc := NewCheckpointService(db, 10*time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
		}
		if db.calls.Load() < 2 {
			t.Errorf("calls = %d, want repeated attempts", db.calls.Load())
		}
	})

	t.Run("does nothing before the first tick", func(t *testing.T) {
		db := &stubCheckpointer{}
		svc := NewCheckpointService(db, time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
		if db.calls.Load() != 0 {
			t.Errorf("calls = %d, want 0", db.calls.Load())
		}
	})
}
