package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Gorm bridges gorm's query logging onto the global zap logger.
type Gorm struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func NewGorm(level gormlogger.LogLevel, slowThreshold time.Duration) *Gorm {
	return &Gorm{level: level, slowThreshold: slowThreshold}
}

func (g *Gorm) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *Gorm) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		zap.L().Sugar().Infof(msg, args...)
	}
}

func (g *Gorm) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		zap.L().Sugar().Warnf(msg, args...)
	}
}

func (g *Gorm) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		zap.L().Sugar().Errorf(msg, args...)
	}
}

func (g *Gorm) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		zap.L().Error("gorm query failed", zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed), zap.Error(err))
	case g.slowThreshold > 0 && elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		zap.L().Warn("slow gorm query", zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		zap.L().Debug("gorm query", zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	}
}
