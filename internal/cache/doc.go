// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

// Package cache provides a small thread-safe TTL cache used by the REST
// layer to absorb bursts of requests for expensive aggregates such as the
// team performance snapshot.
package cache
