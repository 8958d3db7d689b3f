// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package migrations holds the schema history for the store package.
package migrations

import "github.com/uptrace/bun/migrate"

// Migrations is the registry every migration file adds itself to
var Migrations = migrate.NewMigrations()

func init() {
	// Migration names come from their file names.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
