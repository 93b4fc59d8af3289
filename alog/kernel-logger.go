package alog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/kernel/entity"
)

// LoggerOpt allows to initialise a logger with custom options.
type LoggerOpt func(logger *kernelHandler)

// WithHandler adds a slog.Handler to be logged to.
// You can set as many as you want.
func WithHandler(h slog.Handler) LoggerOpt {
	return func(l *kernelHandler) {
		l.handlers = append(l.handlers, h)
	}
}

// WithWriter adds a handler writing human-readable text to w.
func WithWriter(w io.Writer) LoggerOpt {
	return WithHandler(slog.NewTextHandler(w, getDefaultHandlerOptions()))
}

// WithLevel initialises the logger with a starting level.
// To change the level at runtime use Adapter.SetLevel or KernelLogger.SetLevel:
// Unwrap(logger).SetLevel(LevelKernelInfo).
func WithLevel(level slog.Level) LoggerOpt {
	return func(l *kernelHandler) {
		l.level.Set(level)
	}
}

// New returns a Logger owned by the caller.
//
// If no options are given it logs text to os.Stdout at slog.LevelInfo.
// Otherwise, use WithHandler or WithWriter to set your own outputs.
func New(opts ...LoggerOpt) *Adapter {
	return Wrap(NewSlog(opts...))
}

// NewSlog is like New but returns the underlying *slog.Logger,
// for components that log through slog directly.
func NewSlog(opts ...LoggerOpt) *slog.Logger {
	return slog.New(newKernelHandler(opts...))
}

// newKernelHandler implements the kernel specific logging logic.
// It does not output anything directly and relies on other slog.Handlers to do so.
// If no Handlers are provided via WithHandler, a default text handler logs to os.Stdout.
func newKernelHandler(opts ...LoggerOpt) *kernelHandler {
	handler := &kernelHandler{
		handlers: []slog.Handler{},
		level:    &slog.LevelVar{},
	}

	for _, opt := range opts {
		opt(handler)
	}

	if len(handler.handlers) == 0 {
		handler.handlers = []slog.Handler{slog.NewTextHandler(os.Stdout, getDefaultHandlerOptions())}
	}

	return handler
}

// kernelHandler fans each record out to all its handlers and
// correlates the record with the active span, if there is one.
type kernelHandler struct {
	// level is the level for all handlers, shared with all handlers derived via WithAttrs and WithGroup.
	// The level of individual handlers set via WithHandler is ignored.
	level *slog.LevelVar

	// handlers is a list which all get called with the same log message.
	handlers []slog.Handler
}

var (
	_ slog.Handler = (*kernelHandler)(nil)
	_ KernelLogger = (*kernelHandler)(nil)
)

func (l *kernelHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= l.level.Level()
}

func (l *kernelHandler) Handle(ctx context.Context, record slog.Record) error {
	span := trace.SpanFromContext(ctx)

	record = addTraceAndSpanIDsToLogs(span, record)

	if attrs, ok := FromContext(ctx); ok {
		record.AddAttrs(attrs...)
	}

	if span.IsRecording() {
		addLogsToActiveSpanAsEvent(span, getAttrsFromRecord(record), record)
	}

	var retErr error

	for _, h := range l.handlers {
		err := h.Handle(ctx, record)
		retErr = errors.Join(retErr, err)
	}

	return retErr
}

func (l *kernelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(l.handlers))

	for i, h := range l.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}

	return &kernelHandler{handlers: handlers, level: l.level}
}

func (l *kernelHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(l.handlers))

	for i, h := range l.handlers {
		handlers[i] = h.WithGroup(name)
	}

	return &kernelHandler{handlers: handlers, level: l.level}
}

// SetLevel changes the level for all handlers set with WithHandler().
// Even the ones "copied" via any WithX method.
func (l *kernelHandler) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Level returns the log level of the handler.
func (l *kernelHandler) Level() slog.Level {
	return l.level.Level()
}

func addTraceAndSpanIDsToLogs(span trace.Span, record slog.Record) slog.Record {
	sCtx := span.SpanContext()
	attrs := make([]slog.Attr, 0, 2) //nolint:mnd // trace and span id

	if sCtx.HasTraceID() {
		attrs = append(attrs, slog.String("traceID", sCtx.TraceID().String()))
	}

	if sCtx.HasSpanID() {
		attrs = append(attrs, slog.String("spanID", sCtx.SpanID().String()))
	}

	if len(attrs) > 0 {
		record.AddAttrs(attrs...)
	}

	return record
}

func addLogsToActiveSpanAsEvent(span trace.Span, attrs []attribute.KeyValue, record slog.Record) {
	span.AddEvent("log", trace.WithAttributes(attrs...))

	if record.Level >= slog.LevelError {
		span.SetStatus(codes.Error, record.Message)
	}
}

func getAttrsFromRecord(record slog.Record) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, record.NumAttrs()+2) //nolint:mnd // severity and message

	attrs = append(attrs,
		attribute.String("log.severity", record.Level.String()),
		attribute.String("log.message", record.Message),
	)

	record.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, attribute.String(a.Key, a.Value.String()))

		return true // process next attr
	})

	return attrs
}

// KernelLogger offers additional control over a logger created with New at run time.
// Unwrap a logger to get access to these features.
type KernelLogger interface {
	SetLevel(level slog.Level)
	Level() slog.Level
}

// Unwrap returns the KernelLogger of logger.
// In case logger was not created by this package, it returns nil.
func Unwrap(logger *slog.Logger) KernelLogger { //nolint:ireturn // the handler type is not exported
	if logger == nil {
		return nil
	}

	if l, ok := logger.Handler().(*kernelHandler); ok {
		return l
	}

	return nil
}

func getDefaultHandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   false,
		Level:       LevelKernelDebug, // this level is ignored, kernelHandler's level is used for all handlers.
		ReplaceAttr: NameLogLevels,
	}
}

// Wrap returns an Adapter logging to logger.
func Wrap(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = NewNoop()
	}

	return &Adapter{logger: logger}
}

// Adapter implements Logger on top of a *slog.Logger.
type Adapter struct {
	logger *slog.Logger
}

var _ Logger = (*Adapter)(nil)

func (a *Adapter) Debug(ctx context.Context, msg string, args ...any) {
	a.logger.Log(ctx, slog.LevelDebug, msg, args...)
}

func (a *Adapter) Info(ctx context.Context, msg string, args ...any) {
	a.logger.Log(ctx, slog.LevelInfo, msg, args...)
}

func (a *Adapter) Warn(ctx context.Context, msg string, args ...any) {
	a.logger.Log(ctx, slog.LevelWarn, msg, args...)
}

// Warning is an alias of Warn.
func (a *Adapter) Warning(ctx context.Context, msg string, args ...any) {
	a.Warn(ctx, msg, args...)
}

func (a *Adapter) Error(ctx context.Context, msg string, args ...any) {
	a.logger.Log(ctx, slog.LevelError, msg, args...)
}

func (a *Adapter) Critical(ctx context.Context, msg string, args ...any) {
	a.logger.Log(ctx, LevelCritical, msg, args...)
}

// Log logs at the slog.Level that corresponds to level, see SlogLevel.
func (a *Adapter) Log(ctx context.Context, level entity.Level, msg string, args ...any) {
	a.logger.Log(ctx, SlogLevel(level), msg, args...)
}

// With returns an Adapter that includes the given attributes in each output operation.
func (a *Adapter) With(args ...any) *Adapter {
	return &Adapter{logger: a.logger.With(args...)}
}

// WithGroup returns an Adapter that starts a group with the given name.
func (a *Adapter) WithGroup(name string) *Adapter {
	return &Adapter{logger: a.logger.WithGroup(name)}
}

// SetLevel changes the level of the logger at run time.
// It has no effect, if the Adapter does not wrap a logger created by this package.
func (a *Adapter) SetLevel(level entity.Level) {
	if l := Unwrap(a.logger); l != nil {
		l.SetLevel(SlogLevel(level))
	}
}

// Slog returns the wrapped *slog.Logger.
func (a *Adapter) Slog() *slog.Logger {
	return a.logger
}
