package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger sends GORM output to zap. SQL statements are logged at debug
// level, slow statements as warnings and failures as errors, each tagged with
// the trace and scope identifiers of the query context.
type GormLogger struct {
	logger                    *zap.Logger
	logLevel                  gormlogger.LogLevel
	slowThreshold             time.Duration
	ignoreRecordNotFoundError bool
	parameterizedQueries      bool
}

type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is reported as slow.
// Zero disables slow statement reporting.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slowThreshold = threshold }
}

// WithIgnoreRecordNotFoundError controls whether lookups that find nothing are logged as errors
func WithIgnoreRecordNotFoundError(ignore bool) GormLoggerOption {
	return func(l *GormLogger) { l.ignoreRecordNotFoundError = ignore }
}

// WithParameterizedQueries keeps bound values out of logged SQL
func WithParameterizedQueries(enabled bool) GormLoggerOption {
	return func(l *GormLogger) { l.parameterizedQueries = enabled }
}

func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		logger:                    zapLogger.Named("gorm"),
		logLevel:                  level,
		slowThreshold:             200 * time.Millisecond,
		ignoreRecordNotFoundError: true,
		parameterizedQueries:      true,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.logLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, enabledAt gormlogger.LogLevel, level zapcore.Level, msg string, data []any) {
	if l.logLevel < enabledAt {
		return
	}
	if ce := l.scoped(ctx).Check(level, fmt.Sprintf(msg, data...)); ce != nil {
		ce.Write()
	}
}

// ParamsFilter implements gorm.ParamsFilter
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, params ...any) (string, []any) {
	if l.parameterizedQueries {
		return sql, nil
	}
	return sql, params
}

// Trace logs one executed statement
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	level, msg, ok := l.classify(elapsed, err)
	if !ok {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if ce := l.scoped(ctx).Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

// classify picks the entry for a statement, or ok=false when it is not logged at the current level
func (l *GormLogger) classify(elapsed time.Duration, err error) (level zapcore.Level, msg string, ok bool) {
	switch {
	case l.logLevel <= gormlogger.Silent:
		return 0, "", false
	case err != nil:
		if l.logLevel < gormlogger.Error || (l.ignoreRecordNotFoundError && errors.Is(err, gormlogger.ErrRecordNotFound)) {
			return 0, "", false
		}
		return zapcore.ErrorLevel, "SQL Error", true
	case l.slowThreshold != 0 && elapsed > l.slowThreshold && l.logLevel >= gormlogger.Warn:
		return zapcore.WarnLevel, fmt.Sprintf("SLOW SQL >= %v", l.slowThreshold), true
	case l.logLevel >= gormlogger.Info:
		return zapcore.DebugLevel, "SQL Query", true
	}
	return 0, "", false
}

func (l *GormLogger) scoped(ctx context.Context) *zap.Logger {
	return WithLogger(ctx, l.logger).Zap()
}

// MapGormLogLevel maps the application log level to a GORM log level
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
