// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command seekerctl runs schema migrations, data imports and account
// bootstrapping against the soccer-seeker database.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	"github.com/zenithc-git/soccer-Seeker/auth"
	"github.com/zenithc-git/soccer-Seeker/cliparse"
	"github.com/zenithc-git/soccer-Seeker/db"
	"github.com/zenithc-git/soccer-Seeker/importer"
	"github.com/zenithc-git/soccer-Seeker/store"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "seekerctl",
		Usage:  "soccer-seeker maintenance",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Usage:   "database DSN",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.StringFlag{
				Name:    "database-type",
				Aliases: []string{"t"},
				Usage:   "sqlite or postgres",
				Value:   cliparse.DefaultDatabaseType,
				EnvVars: []string{"DATABASE_TYPE"},
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			importCommand(),
			userCommand(),
		},
	}
}

// open connects with the global flags. The caller closes the handle.
func open(c *cli.Context) (*bun.DB, error) {
	cfg := cliparse.Config{
		DatabaseURL:  c.String("database-url"),
		DatabaseType: c.String("database-type"),
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	return db.Open(c.Context, cfg)
}

func withMigrator(fn func(c *cli.Context, m *migrate.Migrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		conn, err := open(c)
		if err != nil {
			return err
		}
		defer conn.Close()
		return fn(c, db.NewMigrator(conn))
	}
}

func withStore(fn func(c *cli.Context, st *store.Store) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		conn, err := open(c)
		if err != nil {
			return err
		}
		defer conn.Close()
		return fn(c, store.New(conn))
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrator) error {
					return m.Init(c.Context)
				}),
			},
			{
				Name:  "up",
				Usage: "apply pending migrations",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrator) error {
					if err := m.Init(c.Context); err != nil {
						return err
					}
					group, err := m.Migrate(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Fprintln(c.App.Writer, "No new migrations to run")
					} else {
						fmt.Fprintf(c.App.Writer, "Migrated to %s\n", group)
					}
					return nil
				}),
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrator) error {
					group, err := m.Rollback(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Fprintln(c.App.Writer, "No groups to roll back")
					} else {
						fmt.Fprintf(c.App.Writer, "Rolled back %s\n", group)
					}
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "print migration status",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrator) error {
					ms, err := m.MigrationsWithStatus(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "migrations: %s\n", ms)
					fmt.Fprintf(c.App.Writer, "unapplied migrations: %s\n", ms.Unapplied())
					fmt.Fprintf(c.App.Writer, "last migration group: %s\n", ms.LastGroup())
					return nil
				}),
			},
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "load CSV or XLSX data",
		Subcommands: []*cli.Command{
			{
				Name:      "standings",
				Usage:     "import a league table CSV",
				ArgsUsage: "<file>",
				Action: withStore(func(c *cli.Context, st *store.Store) error {
					f, err := openArg(c)
					if err != nil {
						return err
					}
					defer f.Close()

					res, err := importer.Standings(c.Context, st, f)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "inserted=%d updated=%d skipped=%d\n", res.Inserted, res.Updated, res.Skipped)
					return nil
				}),
			},
			{
				Name:      "players",
				Usage:     "import a squad list (CSV or XLSX)",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "reset", Usage: "delete each team's players before importing"},
					&cli.Int64SliceFlag{Name: "team", Usage: "team id to reset (repeatable, with --reset)"},
				},
				Action: withStore(func(c *cli.Context, st *store.Store) error {
					f, err := openArg(c)
					if err != nil {
						return err
					}
					defer f.Close()

					if c.Bool("reset") {
						for _, id := range c.Int64Slice("team") {
							n, err := st.DeletePlayers(c.Context, id)
							if err != nil {
								return err
							}
							fmt.Fprintf(c.App.Writer, "cleared %d players from team %d\n", n, id)
						}
					}

					res, err := importer.Players(c.Context, st, f, importer.FormatFromName(f.Name()))
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "inserted=%d updated=%d skipped=%d\n", res.Inserted, res.Updated, res.Skipped)
					return nil
				}),
			},
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "account management",
		Subcommands: []*cli.Command{
			{
				Name:  "create-admin",
				Usage: "create an administrator account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "name", Value: "Administrator"},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
				},
				Action: withStore(func(c *cli.Context, st *store.Store) error {
					hash, err := auth.HashPassword(c.String("password"))
					if err != nil {
						return err
					}
					u := &store.User{
						Name:         c.String("name"),
						Email:        c.String("email"),
						PasswordHash: hash,
						Role:         string(auth.RoleAdmin),
					}
					if err := st.CreateUser(c.Context, u); err != nil {
						if errors.Is(err, store.ErrConflict) {
							return fmt.Errorf("a user with email %s already exists", u.Email)
						}
						return err
					}
					fmt.Fprintf(c.App.Writer, "created admin %d <%s>\n", u.ID, u.Email)
					return nil
				}),
			},
		},
	}
}

func openArg(c *cli.Context) (*os.File, error) {
	path := c.Args().First()
	if path == "" {
		return nil, errors.New("file argument required")
	}
	return os.Open(path)
}
