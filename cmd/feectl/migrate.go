package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/erp/feeengine/internal/infrastructure/config"
	"github.com/erp/feeengine/internal/infrastructure/logger"
	"github.com/erp/feeengine/internal/infrastructure/migration"
	"github.com/erp/feeengine/migrations"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd manages the fee engine schema. Migrations are embedded in the
// binary unless --dir points at a checkout.
func migrateCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, inspect or author schema migrations",
		Long: `Manage the fee engine PostgreSQL schema with golang-migrate.

Connection settings come from config.toml and FEE_DATABASE_* variables.

Examples:
  feectl migrate up
  feectl migrate steps -- -1
  feectl migrate --dir ./migrations create add_hurdle_rate "Hurdle rate on fee components"`,
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "read migrations from this directory instead of the embedded set")

	source := func() (migration.Source, error) {
		if dir == "" {
			return migration.EmbeddedSource(migrations.FS), nil
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return migration.Source{}, fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
		return migration.DirSource(abs), nil
	}

	// withMigrator opens the database only for the subcommands that need it
	withMigrator := func(run func(*migration.Migrator, []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			src, err := source()
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console", Output: "stderr"})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			db, err := sql.Open("postgres", cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			if err := db.PingContext(cmd.Context()); err != nil {
				_ = db.Close()
				return fmt.Errorf("failed to ping database: %w", err)
			}

			m, err := migration.New(db, src, log)
			if err != nil {
				_ = db.Close()
				return err
			}
			defer func() {
				if err := m.Close(); err != nil {
					log.Warn("closing migrator", zap.Error(err))
				}
			}()
			return run(m, args)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE:  withMigrator(func(m *migration.Migrator, _ []string) error { return m.Up() }),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE:  withMigrator(func(m *migration.Migrator, _ []string) error { return m.Down() }),
		},
		&cobra.Command{
			Use:   "steps <n>",
			Short: "Apply n migrations, or roll back when n is negative",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(m *migration.Migrator, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return m.Steps(n)
			}),
		},
		&cobra.Command{
			Use:   "goto <version>",
			Short: "Migrate up or down to a version",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(m *migration.Migrator, args []string) error {
				v, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.GoTo(uint(v))
			}),
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Set the version without running migrations, clearing the dirty flag",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(m *migration.Migrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.Force(v)
			}),
		},
		versionCmd(withMigrator),
		dropCmd(withMigrator),
		listCmd(source),
		createCmd(&dir),
	)
	return cmd
}

type migratorRunner func(func(*migration.Migrator, []string) error) func(*cobra.Command, []string) error

func versionCmd(withMigrator migratorRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withMigrator(func(m *migration.Migrator, _ []string) error {
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if v == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d dirty=%t\n", v, dirty)
		return nil
	})
	return cmd
}

func dropCmd(withMigrator migratorRunner) *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop every object in the database",
		Args:  cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			if !confirm {
				return fmt.Errorf("refusing to drop without --confirm")
			}
			return nil
		},
		RunE: withMigrator(func(m *migration.Migrator, _ []string) error { return m.Drop() }),
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm dropping all tables")
	return cmd
}

func listCmd(source func() (migration.Source, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the migrations in the source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := source()
			if err != nil {
				return err
			}
			fsys := src.FS
			if fsys == nil {
				fsys = os.DirFS(src.Path)
			}
			listed, err := migration.ListMigrations(fsys)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range listed {
				rollback := ""
				if !m.HasDown {
					rollback = " (no rollback)"
				}
				fmt.Fprintf(out, "%s %s%s\n", m.Version, m.Name, rollback)
			}
			return nil
		},
	}
}

func createCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [description]",
		Short: "Write a new up/down migration pair into --dir",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if *dir == "" {
				return fmt.Errorf("create writes files on disk: pass --dir")
			}
			description := ""
			if len(args) == 2 {
				description = args[1]
			}
			mf, err := migration.CreateMigration(*dir, args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n  %s\n  %s\n", mf.Version, mf.UpPath, mf.DownPath)
			return nil
		},
	}
}
