package persistence

import (
	"context"
	"testing"

	"github.com/menudash/backend/internal/infrastructure/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestDatabase_PingAndClose(t *testing.T) {
	d := &Database{DB: setupTestDB(t), name: "catalog"}

	require.NoError(t, d.Ping(context.Background()))
	require.NoError(t, d.Close())
	assert.Error(t, d.Ping(context.Background()))
}

func TestDatabase_Collector(t *testing.T) {
	d := &Database{DB: setupTestDB(t), name: "catalog"}

	c, err := d.Collector()
	require.NoError(t, err)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range families {
		if mf.GetName() != "go_sql_max_open_connections" {
			continue
		}
		found = true
		require.Len(t, mf.GetMetric(), 1)
		m := mf.GetMetric()[0]
		assert.Equal(t, float64(1), m.GetGauge().GetValue())
		require.Len(t, m.GetLabel(), 1)
		assert.Equal(t, "db_name", m.GetLabel()[0].GetName())
		assert.Equal(t, "catalog", m.GetLabel()[0].GetValue())
	}
	assert.True(t, found, "pool metrics not gathered")
}

func TestNewDatabase_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("dials the network")
	}
	cfg := &config.DatabaseConfig{
		Host:         "127.0.0.1",
		Port:         1,
		User:         "menudash",
		DBName:       "menudash",
		SSLMode:      "disable",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	_, err := NewDatabase(cfg, WithLogger(gormlogger.Discard))
	assert.Error(t, err)
}
