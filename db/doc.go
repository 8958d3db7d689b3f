// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and keeps its schema current.

# Connecting

Open picks the driver from Config.DatabaseType:

	conn, err := db.Open(ctx, cfg)

  - sqlite (default): modernc.org/sqlite, pure Go. Foreign keys are switched on
    and the pool is capped at one connection.
  - postgres: lib/pq.

Both are wrapped in a *bun.DB with the matching dialect.

# Schema

Migrate runs every pending migration from store/migrations:

	if err := db.Migrate(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times. The same migrations back the seekerctl migrate
commands and every test database.

# Tables

  - seasons: end year and "YYYY-YYYY" name
  - teams: unique names
  - team_season_stats: one line per (season, team)
  - players: squad members, unique per (team, first, last, shirt)
  - users: accounts with role user, vip_user or admin

# Relationships

	seasons 1──* team_season_stats *──1 teams
	teams   1──* players

Foreign keys use ON DELETE CASCADE.
*/
package db
