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

var standingsIndexes = []struct {
	name    string
	model   any
	columns []string
}{
	{"idx_tss_season_position", (*store.TeamSeasonStats)(nil), []string{"season_id", "position"}},
	{"idx_tss_season_points", (*store.TeamSeasonStats)(nil), []string{"season_id", "points"}},
	{"idx_tss_team", (*store.TeamSeasonStats)(nil), []string{"team_id"}},
	{"idx_players_team", (*store.Player)(nil), []string{"team_id"}},
	{"idx_players_last_name", (*store.Player)(nil), []string{"last_name"}},
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		slog.Info("creating standings indexes")

		for _, idx := range standingsIndexes {
			_, err := db.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				Column(idx.columns...).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for _, idx := range standingsIndexes {
			_, err := db.NewDropIndex().Index(idx.name).IfExists().Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop index %s: %w", idx.name, err)
			}
		}
		return nil
	})
}
