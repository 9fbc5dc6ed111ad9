// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/taskpulse/internal/logging"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() {
		logging.Init(logging.DefaultConfig())
	})
	return &buf
}

func TestLogUnstoppedServices(t *testing.T) {
	tests := []struct {
		name     string
		services []suture.UnstoppedService
		err      error
		want     []string
	}{
		{
			name: "report error",
			err:  errors.New("supervisor not stopped"),
			want: []string{`"level":"warn"`, `"error":"supervisor not stopped"`, "Failed to collect unstopped service report"},
		},
		{
			name:     "unstopped services",
			services: []suture.UnstoppedService{{Name: "http-server"}, {Name: "websocket-hub"}},
			want:     []string{`"service":"http-server"`, `"service":"websocket-hub"`, "Service failed to stop within timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			logUnstoppedServices(func() ([]suture.UnstoppedService, error) {
				return tt.services, tt.err
			})

			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("expected %s in output: %s", want, buf.String())
				}
			}
		})
	}
}

func TestLogUnstoppedServices_CleanShutdown(t *testing.T) {
	buf := captureLogs(t)

	logUnstoppedServices(func() ([]suture.UnstoppedService, error) {
		return nil, nil
	})

	if buf.Len() != 0 {
		t.Errorf("expected no output for a clean shutdown, got: %s", buf.String())
	}
}
