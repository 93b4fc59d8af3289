package alog

import (
	"context"
	"log/slog"
)

// NewNoop returns a *slog.Logger that discards every record.
// Ideal as dependency in tests and as default for optional loggers.
func NewNoop() *slog.Logger {
	return slog.New(noopHandler{})
}

// NewNoopLogger is NewNoop as a Logger.
func NewNoopLogger() *Adapter {
	return &Adapter{logger: NewNoop()}
}

// noopHandler is disabled for all levels, so slog never builds a record for it.
type noopHandler struct{}

var _ slog.Handler = noopHandler{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }
func (noopHandler) Handle(context.Context, slog.Record) error { return nil }
func (n noopHandler) WithAttrs([]slog.Attr) slog.Handler { return n }
func (n noopHandler) WithGroup(string) slog.Handler { return n }
