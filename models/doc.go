// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: name, email, password, role, birthday
  - LoginRequest: email, password
  - UpdateProfileRequest: name, birthday (both optional)
  - ChangePasswordRequest: old_password, new_password
  - UpdateRoleRequest: role
  - UpdateStatsRequest: per-column optional stats edit
  - UpdatePlayerRequest: per-column optional player edit

# Response Types

  - SeasonsResponse: season end years
  - StandingsResponse: season, type, count, rows
  - TeamsResponse, TeamProfileResponse, TeamHistoryResponse
  - ProMetricsResponse: team, season, metrics, log, narrative
  - PlayersResponse: one page of players plus total
  - LoginResponse: token, user
  - UsersResponse, MessageResponse
  - ErrorResponse: error, message, code

# Domain Types

  - Team, Player, User
  - TeamSeasonLine: one season of a team with computed position
  - ProMetrics: expectation figures under the names the page reads
    (exp_points, exp_points_per_match, delta_points, exp_win_rate, ...)

# Error Codes

ErrorResponse.Code is a stable machine-readable reason:

	invalid_policy    unknown standings type
	no_valid_matches  team has played no matches
	missing_season    season parameter absent
	not_found, unauthorized, forbidden, rate_limited,
	invalid_json, conflict, invalid_upload, bad_request, internal

Dates travel as DateLayout (YYYY-MM-DD).
*/
package models
