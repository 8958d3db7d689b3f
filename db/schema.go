// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/zenithc-git/soccer-Seeker/store/migrations"
)

// NewMigrator returns a migrator over the store's schema history
func NewMigrator(db *bun.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, migrations.Migrations)
}

// Migrate brings the schema up to date.
// Safe to call on every start - applied migrations are skipped.
func Migrate(ctx context.Context, db *bun.DB) error {
	migrator := NewMigrator(db)

	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	if group.IsZero() {
		slog.Info("schema up to date")
	} else {
		slog.Info("schema migrated", "group", group.String())
	}

	return nil
}
