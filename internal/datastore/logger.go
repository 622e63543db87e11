// Package-level logging for datastore operations and a slog-backed GORM logger.
package datastore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/logging"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold defines the duration after which a query is considered slow.
const slowQueryThreshold = time.Second

var (
	datastoreLogger   *slog.Logger
	datastoreLevelVar = new(slog.LevelVar)
	loggerCloseFunc   func() error
	loggerOnce        sync.Once
)

// InitializeLogger initializes the datastore file logger. Safe to call
// multiple times, initialization happens only once.
func InitializeLogger() error {
	var initErr error
	loggerOnce.Do(func() {
		datastoreLevelVar.Set(slog.LevelInfo)
		logConf := conf.LogConfig{Enabled: true, Path: "logs/datastore.log", MaxSize: 10, MaxAge: 30}

		var err error
		datastoreLogger, loggerCloseFunc, err = logging.NewFileLogger(&logConf, "datastore", datastoreLevelVar)
		if err != nil {
			datastoreLogger = slog.Default().With("service", "datastore")
			loggerCloseFunc = func() error { return nil }
			initErr = fmt.Errorf("datastore: failed to initialize file logger: %w", err)
		}
	})
	return initErr
}

// CloseLogger releases the datastore log file.
func CloseLogger() error {
	if loggerCloseFunc != nil {
		return loggerCloseFunc()
	}
	return nil
}

func getLogger() *slog.Logger {
	if datastoreLogger == nil {
		return slog.Default().With("service", "datastore")
	}
	return datastoreLogger
}

// gormSlogLogger adapts the datastore slog logger to the GORM logger interface.
type gormSlogLogger struct {
	level gormlogger.LogLevel
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() gormlogger.Interface {
	return &gormSlogLogger{level: gormlogger.Warn}
}

func (l *gormSlogLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &gormSlogLogger{level: level}
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		getLogger().Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		getLogger().Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		getLogger().Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && l.level >= gormlogger.Error && err != gorm.ErrRecordNotFound:
		getLogger().Error("Query failed", "sql", sql, "rows", rows, "elapsed", elapsed, "error", err)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		getLogger().Warn("Slow query", "sql", sql, "rows", rows, "elapsed", elapsed)
	case l.level >= gormlogger.Info:
		getLogger().Debug("Query", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
