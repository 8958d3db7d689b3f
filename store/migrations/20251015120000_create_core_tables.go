// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package migrations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/zenithc-git/soccer-Seeker/store"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		slog.Info("creating core tables")

		tables := []struct {
			name  string
			model any
			fks   []string
		}{
			{name: "seasons", model: (*store.Season)(nil)},
			{name: "teams", model: (*store.Team)(nil)},
			{
				name:  "team_season_stats",
				model: (*store.TeamSeasonStats)(nil),
				fks: []string{
					`("season_id") REFERENCES "seasons" ("id") ON DELETE CASCADE`,
					`("team_id") REFERENCES "teams" ("id") ON DELETE CASCADE`,
				},
			},
			{
				name:  "players",
				model: (*store.Player)(nil),
				fks:   []string{`("team_id") REFERENCES "teams" ("id") ON DELETE CASCADE`},
			},
			{name: "users", model: (*store.User)(nil)},
		}

		for _, t := range tables {
			q := db.NewCreateTable().Model(t.model).IfNotExists()
			for _, fk := range t.fks {
				q = q.ForeignKey(fk)
			}
			if _, err := q.Exec(ctx); err != nil {
				return fmt.Errorf("failed to create %s table: %w", t.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		slog.Info("dropping core tables")

		models := []any{
			(*store.User)(nil),
			(*store.Player)(nil),
			(*store.TeamSeasonStats)(nil),
			(*store.Team)(nil),
			(*store.Season)(nil),
		}
		for _, m := range models {
			if _, err := db.NewDropTable().Model(m).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop table: %w", err)
			}
		}
		return nil
	})
}
