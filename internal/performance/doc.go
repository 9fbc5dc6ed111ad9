// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

/*
Package performance computes the team performance leaderboard.

For every user with the team_member role the Calculator issues five
independent aggregate queries and combines them with fixed weights:

	onTimeCompletion   = round(onTimeCompleted / totalAssigned * 100), or 100 when nothing is assigned
	collaborationScore = min(100, activities)
	totalScore         = round((tasksCompleted*40 + onTimeCompletion*30 +
	                            min(documentComments*10, 100)*15 + collaborationScore*15) / 100)

totalScore is comparable to, but not bounded by, 100.

Members are computed concurrently with a bounded errgroup. A member whose
queries fail is logged and left out of the snapshot; the others are
unaffected. Only a failure to list the members fails the whole snapshot.
*/
package performance
