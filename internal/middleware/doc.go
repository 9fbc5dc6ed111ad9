// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

/*
Package middleware provides HTTP middleware shared by the API router.

PrometheusMetrics instruments every request with the api_* collectors from the
metrics package. Its response writer forwards Hijack so WebSocket upgrades keep
working behind it.

	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
