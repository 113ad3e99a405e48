package configs

import (
	"context"
	"fmt"
	"time"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
	logger        gokitlog.Logger
}

func NewGormLogger(logger gokitlog.Logger) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
		logger:        gokitlog.With(logger, "component", "gorm"),
	}
}

func (l *GormLogger) LogMode(lvl gormLogger.LogLevel) gormLogger.Interface {
	clone := *l
	clone.LogLevel = lvl
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		_ = level.Info(l.logger).Log("msg", fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		_ = level.Warn(l.logger).Log("msg", fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		_ = level.Error(l.logger).Log("msg", fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		_ = level.Error(l.logger).Log("file", file, "err", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		_ = level.Warn(l.logger).Log("msg", "slow sql", "file", file, "elapsed", elapsed, "rows", rows, "sql", sql)
	case l.LogLevel >= gormLogger.Info:
		_ = level.Debug(l.logger).Log("file", file, "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
