// Package migration versions the catalog schema with golang-migrate.
// Migration files are embedded in the binary; a directory on disk can
// replace them during development.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/menudash/backend/migrations"
	"go.uber.org/zap"
)

// Migrator applies the catalog schema.
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// Source opens the migration files in dir, or the files embedded in the
// binary when dir is empty.
func Source(dir string) (source.Driver, error) {
	var fsys fs.FS = migrations.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}
	return src, nil
}

// New creates a Migrator over an open PostgreSQL connection
func New(db *sql.DB, dir string, logger *zap.Logger) (*Migrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	src, err := Source(dir)
	if err != nil {
		return nil, err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: "schema_migrations"})
	if err != nil {
		return nil, fmt.Errorf("postgres migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	m.Log = migrateLog{logger.Named("migrate").Sugar()}

	return &Migrator{
		migrate: m,
		logger:  logger,
	}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up() error {
	return m.run("up", m.migrate.Up)
}

// Down rolls back every applied migration.
func (m *Migrator) Down() error {
	return m.run("down", m.migrate.Down)
}

// Steps applies n migrations forward, or -n backward when n is negative.
func (m *Migrator) Steps(n int) error {
	return m.run(fmt.Sprintf("steps %+d", n), func() error { return m.migrate.Steps(n) })
}

// GoTo migrates up or down to version.
func (m *Migrator) GoTo(version uint) error {
	return m.run(fmt.Sprintf("goto %d", version), func() error { return m.migrate.Migrate(version) })
}

// run executes op, treating ErrNoChange as success, and logs the schema
// version it leaves behind.
func (m *Migrator) run(op string, fn func() error) error {
	log := m.logger.With(zap.String("op", op))
	log.Info("Migrating schema")

	if err := fn(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Schema already current")
			return nil
		}
		return fmt.Errorf("migrate %s: %w", op, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	log.Info("Schema migrated", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Version reports the applied schema version, 0 on an empty database.
func (m *Migrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = m.migrate.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied and clears the dirty flag without
// running any migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing schema version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Close releases the migration source and database driver.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.migrate.Close()
	return errors.Join(srcErr, dbErr)
}

// migrateLog forwards golang-migrate's progress lines to zap at debug.
type migrateLog struct{ *zap.SugaredLogger }

func (l migrateLog) Printf(format string, v ...any) {
	l.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLog) Verbose() bool {
	return l.Desugar().Core().Enabled(zap.DebugLevel)
}
