package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/menudash/backend/internal/infrastructure/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database is the catalog's PostgreSQL pool. DB is the gorm session
// shared by every repository.
type Database struct {
	DB   *gorm.DB
	name string
}

// Option adjusts the gorm.Config used by NewDatabase.
type Option func(*gorm.Config)

// WithLogger routes gorm's query log to l.
func WithLogger(l gormlogger.Interface) Option {
	return func(c *gorm.Config) { c.Logger = l }
}

// NewDatabase opens the pool described by cfg and pings it. Driver errors
// are left untranslated; translateError classifies them per repository.
func NewDatabase(cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	gcfg := &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}
	for _, opt := range opts {
		opt(gcfg)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	d := &Database{DB: db, name: cfg.DBName}

	pool, err := d.pool()
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return d, nil
}

func (d *Database) pool() (*sql.DB, error) {
	pool, err := d.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("database pool: %w", err)
	}
	return pool, nil
}

// Ping reports whether the database answers. It backs the health check.
func (d *Database) Ping(ctx context.Context) error {
	pool, err := d.pool()
	if err != nil {
		return err
	}
	return pool.PingContext(ctx)
}

// Close closes every pooled connection.
func (d *Database) Close() error {
	pool, err := d.pool()
	if err != nil {
		return err
	}
	return pool.Close()
}

// Collector exposes the pool statistics (open, in use, idle, waits) as
// go_sql_* Prometheus metrics labelled with the database name.
func (d *Database) Collector() (prometheus.Collector, error) {
	pool, err := d.pool()
	if err != nil {
		return nil, err
	}
	return collectors.NewDBStatsCollector(pool, d.name), nil
}
