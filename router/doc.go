// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Soccer Seeker API.

# Route Registration

NewRouter builds a chi router with every endpoint wired:

	h := router.NewRouter(db, cfg, metrics.New())

Every request passes Recover, WithLogging, CORS and Instrument, in that order.

# Endpoints

Service:

	GET /health     - Liveness
	GET /metrics    - Prometheus exposition
	GET /           - Embedded single page
	GET /uploads/*  - Stored avatars

Public reads:

	GET /api/seasons                          - Season end years
	GET /api/standings?season=&type=&limit=   - Ranked table
	GET /api/teams?season=&q=                 - Teams
	GET /api/team_profile?team_id=&season=    - Stats line, players, narrative
	GET /api/team_history?team_id=            - Every season of a team
	GET /api/players?team_id=&initial=&q=     - Paged players
	GET /api/players/{id}                     - One player

Accounts:

	POST   /api/register     - Create account (user or vip_user)
	POST   /api/login        - Issue token, throttled per IP
	GET    /api/me           - Current user (login)
	PUT    /api/me           - Edit name and birthday (login)
	POST   /api/me/avatar    - Multipart avatar upload (login)
	POST   /api/me/password  - Change password (login)
	DELETE /api/users/me     - Delete account (login)

Premium (vip_user or admin):

	GET /api/team_stats_plot?team_id=&token=  - PNG history chart
	GET /api/pro_metrics?team_id=&season=     - Pythagorean expectation

Admin:

	GET /api/users
	PUT /api/admin/seasons/{season}/teams/{team_id}
	PUT /api/admin/players/{id}
	PUT /api/admin/users/{id}/role
*/
package router
