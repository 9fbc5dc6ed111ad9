// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

/*
Package websocket implements the realtime update hub.

The hub owns every live connection and dispatches the messages they send.
Connections move through four states:

	Connecting -> Unauthenticated -> Authenticated -> Closed

A new connection gets a UUID and waits in the pending bucket until its
first message, the handshake:

	{"userId": 7, "username": "asmith"}

A handshake that is not valid JSON or lacks either field closes the
connection with a policy-violation close frame. A valid one moves the
connection into the registry and the server replies with a "connected"
message. Closing the socket removes the connection from the pending bucket,
the registry and the team performance subscription set in one step.

Each client runs two goroutines:
  - readPump: performs the handshake, then handles inbound messages one at a time
  - writePump: drains the buffered send channel and sends keepalive pings

Inbound messages (after the handshake):

  - subscribe_team_performance: join the subscription set; every subscriber
    then receives a freshly computed team_performance snapshot
  - task_update: change a task's status. The transition is checked against
    the table in package tasks, persisted, recorded as an activity, broadcast
    as task_update to every other client and acknowledged to the sender as
    task_update_success

Failures are reported to the sender only as

	{"type": "error", "code": "TASK_NOT_FOUND", "message": "Task 42 not found"}

with codes MESSAGE_PARSE_ERROR, TASK_NOT_FOUND, INVALID_STATUS_TRANSITION
and DATABASE_ERROR. The connection stays open.

Team performance is also pushed on a timer (30s by default) while at least
one client is subscribed, and on demand via Hub.TriggerTeamPerformance.
Task updates never trigger a performance broadcast.

Delivery is best-effort. Sends are non-blocking; a full send buffer drops
the message for that client only and never unregisters it.

Usage:

	hub := websocket.NewHub(db, performance.NewCalculator(db, 8), &cfg.WebSocket)
	go hub.RunWithContext(ctx)

	// in the HTTP handler, after upgrading
	client := websocket.NewClient(hub, conn)
	client.Start()
*/
package websocket
