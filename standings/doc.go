// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package standings turns a season's per-team result lines into a league table.

# Policies

A table can be ordered four ways:

	points        points desc, goal difference desc, goals for desc
	goals_for     goals for desc, points desc
	goals_against goals against asc, points desc
	goal_diff     goal difference desc, points desc

Every chain ends with team name ascending and then team ID ascending, so the
order is total and the same input always yields the same table.

	policy, err := standings.ParsePolicy(r.URL.Query().Get("type"))
	rows, err := standings.Rank(records, policy)

An empty token parses to PolicyPoints. Anything else that is not listed above
yields an *InvalidPolicyError; there is no silent fallback.

# Goal Difference

Stored goal difference is never trusted. Rank recomputes it from goals for and
goals against before comparing, and the returned rows carry the recomputed
value.

# Concurrency

Rank copies its input and keeps no state, so it can be called from any number
of goroutines on the same slice.
*/
package standings
