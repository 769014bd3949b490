//go:build integration

// Package pgtest starts throwaway PostgreSQL containers for integration tests.
package pgtest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	sharedMu  sync.Mutex
	sharedDSN string
	shared    testcontainers.Container
)

// DB is a migrated database connection
type DB struct {
	Gorm *gorm.DB
	SQL  *sql.DB
	DSN  string
	t    *testing.T
}

// New returns a connection to a package-wide PostgreSQL container with the
// catalog schema applied. Tables are truncated before the connection is
// returned.
func New(t *testing.T) *DB {
	t.Helper()

	dsn := sharedContainer(t)
	db := connect(t, dsn)
	db.Truncate()
	t.Cleanup(func() { _ = db.SQL.Close() })
	return db
}

// Start runs a dedicated, unmigrated container and returns its DSN
func Start(t *testing.T) string {
	t.Helper()
	container, dsn := run(t)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })
	return dsn
}

// Terminate stops the package-wide container. Call it from TestMain.
func Terminate() {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = shared.Terminate(ctx)
		shared = nil
		sharedDSN = ""
	}
}

func sharedContainer(t *testing.T) string {
	t.Helper()

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		container, dsn := run(t)
		db := connect(t, dsn)
		m, err := migration.New(db.SQL, "", zaptest.NewLogger(t))
		require.NoError(t, err, "Failed to create migrator")
		require.NoError(t, m.Up(), "Failed to run migrations")
		_ = db.SQL.Close()

		shared = container
		sharedDSN = dsn
	}
	return sharedDSN
}

func run(t *testing.T) (testcontainers.Container, string) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("menudash_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")
	return container, dsn
}

func connect(t *testing.T, dsn string) *DB {
	t.Helper()

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	gdb, err := gorm.Open(gormpostgres.Open(dsn), cfg)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)

	return &DB{Gorm: gdb, SQL: sqlDB, DSN: dsn, t: t}
}

// Truncate empties every catalog table
func (d *DB) Truncate() {
	d.t.Helper()
	err := d.Gorm.Exec(`TRUNCATE TABLE products_complements, products, complement_items, complements, product_categories, companies CASCADE`).Error
	require.NoError(d.t, err, "Failed to truncate tables")
}

// CreateCompany inserts a company owned by ownerID and returns its id
func (d *DB) CreateCompany(ownerID string) uuid.UUID {
	d.t.Helper()
	id := uuid.New()
	err := d.Gorm.Exec(`
		INSERT INTO companies (id, owner_id, name, slug, status, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, 'ACTIVE', 1, NOW(), NOW())
	`, id, ownerID, "Company "+id.String()[:8], fmt.Sprintf("company-%s", id.String()[:8])).Error
	require.NoError(d.t, err, "Failed to create test company")
	return id
}
