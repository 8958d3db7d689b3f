// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Soccer Seeker API server.

Soccer Seeker serves English Premier League season tables. It re-ranks a
season by points, goals for, goals against or goal difference, and gives
premium accounts a Pythagorean expectation report for any team season.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=seeker.db JWT_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -jwt-secret ...

Data is loaded with the seekerctl command:

	go run ./cmd/seekerctl -d seeker.db import standings epl.csv

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): HMAC secret for access tokens

Optional settings are listed in package cliparse, and may also come from a
YAML file (-c) or a .env file.

# Architecture

  - standings: Ranking policies and tie-breaks
  - analytics: Pythagorean expectation and its narrative
  - handlers: HTTP request handlers
  - router: Route definitions using chi
  - middleware: Logging, CORS, auth guards, rate limiting, metrics
  - store: bun models, queries and migrations
  - db: Driver selection and migration runner
  - importer: CSV and XLSX loaders
  - charts: Season history PNGs
  - metrics: Prometheus collectors
  - models: Request/response types
  - auth: Roles, passwords and JWTs
  - cliparse: Configuration parsing

The server shuts down gracefully on SIGINT or SIGTERM.
*/
package main
