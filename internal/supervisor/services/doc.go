// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

/*
Package services adapts TaskPulse components to suture.Service.

Each wrapper turns a component's own lifecycle (ListenAndServe/Shutdown,
RunWithContext, a periodic job) into Serve(ctx) error and names itself
through fmt.Stringer so supervisor events are readable:

  - HTTPServerService ("http-server"): runs *http.Server and drains it on cancel
  - WebSocketHubService ("websocket-hub"): runs the hub's performance timer and
    closes every client when the context ends
  - CheckpointService ("duckdb-checkpoint"): periodically checkpoints DuckDB

The interfaces they accept (HTTPServer, ContextHub, Checkpointer) keep this
package free of imports on api, websocket and database.
*/
package services
