// Command migrate manages the catalog database schema.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/menudash/backend/internal/infrastructure/config"
	"github.com/menudash/backend/internal/infrastructure/logger"
	"github.com/menudash/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

var errUsage = errors.New("usage")

// dbCommand runs against the database. args excludes the command name.
type dbCommand struct {
	nargs int
	usage string
	run   func(m *migration.Migrator, log *zap.Logger, args []string) error
}

var dbCommands = map[string]dbCommand{
	"up": {usage: "up", run: func(m *migration.Migrator, _ *zap.Logger, _ []string) error {
		return m.Up()
	}},
	"down": {usage: "down", run: func(m *migration.Migrator, _ *zap.Logger, _ []string) error {
		return m.Down()
	}},
	"step": {nargs: 1, usage: "step <n>", run: func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return m.Steps(n)
	}},
	"goto": {nargs: 1, usage: "goto <version>", run: func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.GoTo(uint(v))
	}},
	"force": {nargs: 1, usage: "force <version>", run: func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.Force(v)
	}},
	"version": {usage: "version", run: func(m *migration.Migrator, log *zap.Logger, _ []string) error {
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if v == 0 {
			log.Info("No migrations applied")
			return nil
		}
		log.Info("Current migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return nil
	}},
}

func main() {
	migrationsPath := flag.String("path", "", "Read migrations from this directory instead of the embedded set")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      *logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(flag.Args(), *migrationsPath, log); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
			os.Exit(2)
		}
		log.Fatal("Migration command failed", zap.Strings("args", flag.Args()), zap.Error(err))
	}
}

func run(args []string, migrationsPath string, log *zap.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	name, rest := args[0], args[1:]

	// create and list work on files and never touch the database
	dir := migrationsPath
	if dir == "" {
		dir = defaultMigrationsPath
	}
	switch name {
	case "create":
		if len(rest) == 0 {
			return fmt.Errorf("%w: create <name> [description]", errUsage)
		}
		description := ""
		if len(rest) > 1 {
			description = rest[1]
		}
		mf, err := migration.CreateMigration(dir, rest[0], description)
		if err != nil {
			return err
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return nil
	case "list":
		list, err := migration.ListMigrations(dir)
		if err != nil {
			return err
		}
		log.Info("Available migrations", zap.Int("count", len(list)))
		for _, m := range list {
			fmt.Println("  -", m)
		}
		return nil
	}

	cmd, ok := dbCommands[name]
	if !ok {
		log.Error("Unknown command", zap.String("command", name))
		return errUsage
	}
	if len(rest) < cmd.nargs {
		return fmt.Errorf("%w: %s", errUsage, cmd.usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, migrationsPath, log)
	if err != nil {
		return err
	}
	defer m.Close()
	return cmd.run(m, log, rest)
}

func printUsage() {
	fmt.Println(`Menu catalog database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version after a failed run
  create <name> [desc]  Create the next migration file pair
  list                  List migrations on disk

Flags:
  -path string          Migrations directory (default: embedded set, ./migrations for create/list)
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  MENU_DATABASE_HOST, MENU_DATABASE_PORT, MENU_DATABASE_USER,
  MENU_DATABASE_PASSWORD, MENU_DATABASE_DBNAME, MENU_DATABASE_SSLMODE`)
}
