// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package analytics computes a Pythagorean expectation for a team-season.

	m, log := analytics.Compute(analytics.Input{
		GoalsFor: 68, GoalsAgainst: 33, Played: 38, Points: 75,
	}, analytics.DefaultExponent)

The expected win rate is gf^k / (gf^k + ga^k) with k = 2.7 by default. When
both goal counts are zero the rate is a neutral 0.5. Expected points are the
win rate times three points times matches played.

Compute returns the metrics together with a trace, one line per step in a
fixed order. A team with no matches played gets nil metrics and exactly one
trace line; callers that prefer an error can map that to ErrNoValidMatches.

Reported figures are rounded: rates to 4 places, point totals to 2, per-match
averages to 3.

Narrative renders a one-line verdict using a band of plus or minus three
points.
*/
package analytics
