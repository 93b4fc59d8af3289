// Package alog is the logging layer of the kernel.
//
// It is built on top of log/slog and adds the kernel specific levels,
// correlation with tracing and assertions for the use in tests.
package alog

import (
	"context"
	"log/slog"

	"github.com/go-arrower/kernel/entity"
)

// Logger is the interface use cases and adapters log through.
// It has one method per entity.Level and takes a context.Context everywhere, so that
// tracing information can be correlated.
//
// Logging is fire and forget: no method returns an error.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	Critical(ctx context.Context, msg string, args ...any)
	Log(ctx context.Context, level entity.Level, msg string, args ...any)
}

const (
	// LevelKernelInfo is used to see what is going on inside the kernel.
	LevelKernelInfo = slog.Level(-8)

	// LevelKernelDebug is used by kernel developers, if you really want to know what is going on.
	LevelKernelDebug = slog.Level(-12)

	// LevelCritical is for failures the application can not recover from.
	LevelCritical = slog.Level(12)
)

// NameLogLevels replaces the default name of a custom log level with a speaking name for the kernel levels.
// Use it as slog.HandlerOptions.ReplaceAttr.
func NameLogLevels(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey {
		level, _ := attr.Value.Any().(slog.Level)

		levelLabel, exists := getLevelNames()[level]
		if !exists {
			levelLabel = level.String()
		}

		attr.Value = slog.StringValue(levelLabel)
	}

	return attr
}

// getLevelNames maps the kernel log levels to human-readable names.
func getLevelNames() map[slog.Leveler]string {
	return map[slog.Leveler]string{
		LevelKernelInfo:  "KERNEL:INFO",
		LevelKernelDebug: "KERNEL:DEBUG",
		LevelCritical:    "CRITICAL",
	}
}

// SlogLevel returns the slog.Level a record of the given entity.Level is logged with.
// Unknown levels are logged as info.
func SlogLevel(level entity.Level) slog.Level {
	switch level {
	case entity.LevelDebug:
		return slog.LevelDebug
	case entity.LevelInfo:
		return slog.LevelInfo
	case entity.LevelWarn:
		return slog.LevelWarn
	case entity.LevelError:
		return slog.LevelError
	case entity.LevelCritical:
		return LevelCritical
	default:
		return slog.LevelInfo
	}
}

// EntityLevel is the inverse of SlogLevel. Levels in between are rounded down,
// so the kernel levels are reported as debug.
func EntityLevel(level slog.Level) entity.Level {
	switch {
	case level >= LevelCritical:
		return entity.LevelCritical
	case level >= slog.LevelError:
		return entity.LevelError
	case level >= slog.LevelWarn:
		return entity.LevelWarn
	case level >= slog.LevelInfo:
		return entity.LevelInfo
	default:
		return entity.LevelDebug
	}
}
