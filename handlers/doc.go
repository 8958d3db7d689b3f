// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Soccer Seeker API.

# Handler Types

Each handler is a struct holding the store and whatever else it needs:

  - StandingsHandler: Seasons and ranked tables
  - TeamHandler: Team lists, profiles, history and charts
  - AnalyticsHandler: Pythagorean expectation (premium)
  - PlayerHandler: Player search and lookup
  - UserHandler: Registration, login and the current account
  - AdminHandler: Stats, player and role edits

Handlers are created via constructor functions:

	standings := handlers.NewStandingsHandler(st, m)
	users := handlers.NewUserHandler(st, cfg, tokens)

# Standings

GetStandings reads season, type and limit:

	GET /api/standings?season=2024&type=goal_diff&limit=4

type is one of points, goals_for, goals_against or goal_diff, defaulting to
points. Anything else is a 400 with code invalid_policy. A missing season is
a 400 with code missing_season.

# Teams

A team is named by team_id or, failing that, team_name. Positions reported in
profiles and history come from ranking the whole season by points, so they
stay consistent with the standings table after edits.

# Pro Metrics

ProMetrics answers with the computed figures, the step-by-step log and a
one-line verdict. A team that played no matches gets a 422 with code
no_valid_matches and the log so far.

# Accounts

Tokens are accepted from the Authorization header or a token query
parameter. Registration may choose user or vip_user; admin accounts are made
with seekerctl or promoted by another admin.
*/
package handlers
