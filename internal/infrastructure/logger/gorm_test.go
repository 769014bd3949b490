package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	_ gormlogger.Interface = (*GormLogger)(nil)
	_ gorm.ParamsFilter    = (*GormLogger)(nil)
)

func selectComplements() (string, int64) {
	return `SELECT * FROM "complements" WHERE company_id = $1`, 3
}

func TestGormLogger_Options(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
		WithParameterizedQueries(false),
	)

	assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)
	assert.False(t, gl.parameterizedQueries)
}

func TestGormLogger_LogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info)
	changed, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, gormlogger.Warn, changed.logLevel)
}

func TestGormLogger_LevelGating(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn)

	gl.Info(context.Background(), "migrating %s", "complements")
	gl.Warn(context.Background(), "warning %d", 42)
	gl.Error(context.Background(), "error")

	logs := recorded.All()
	require.Len(t, logs, 2)
	assert.Equal(t, "warning 42", logs[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs[1].Level)
}

func TestGormLogger_ParamsFilter(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info)
	sql, params := gl.ParamsFilter(context.Background(), "SELECT ?", "secret")
	assert.Equal(t, "SELECT ?", sql)
	assert.Nil(t, params)

	gl = NewGormLogger(zap.NewNop(), gormlogger.Info, WithParameterizedQueries(false))
	_, params = gl.ParamsFilter(context.Background(), "SELECT ?", "secret")
	assert.Equal(t, []any{"secret"}, params)
}

func TestGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name      string
		level     gormlogger.LogLevel
		opts      []GormLoggerOption
		begin     time.Time
		err       error
		wantMsg   string
		wantEmpty bool
	}{
		{name: "error", level: gormlogger.Error, begin: time.Now(), err: errors.New("boom"), wantMsg: "SQL Error"},
		{name: "record not found ignored", level: gormlogger.Error, begin: time.Now(), err: gormlogger.ErrRecordNotFound, wantEmpty: true},
		{name: "slow query", level: gormlogger.Warn, opts: []GormLoggerOption{WithSlowThreshold(time.Nanosecond)}, begin: time.Now().Add(-time.Second), wantMsg: "SLOW SQL"},
		{name: "normal query", level: gormlogger.Info, begin: time.Now(), wantMsg: "SQL Query"},
		{name: "silent", level: gormlogger.Silent, begin: time.Now(), wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			gl := NewGormLogger(zap.New(core), tt.level, tt.opts...)

			gl.Trace(context.Background(), tt.begin, selectComplements, tt.err)

			if tt.wantEmpty {
				assert.Empty(t, recorded.All())
				return
			}
			logs := recorded.All()
			require.Len(t, logs, 1)
			assert.Contains(t, logs[0].Message, tt.wantMsg)
		})
	}
}

func TestGormLogger_Trace_ContextFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Info)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, CompanyIDKey, "company-1")

	gl.Trace(ctx, time.Now(), selectComplements, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "company-1", fields["company_id"])
	assert.Equal(t, int64(3), fields["rows"])
}

func TestMapGormLogLevel(t *testing.T) {
	tests := map[string]gormlogger.LogLevel{
		"silent":  gormlogger.Silent,
		"error":   gormlogger.Error,
		"warn":    gormlogger.Warn,
		"info":    gormlogger.Info,
		"debug":   gormlogger.Info,
		"unknown": gormlogger.Warn,
		"":        gormlogger.Warn,
	}
	for level, want := range tests {
		assert.Equal(t, want, MapGormLogLevel(level), level)
	}
}
