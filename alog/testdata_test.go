package alog_test

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	applicationMsg = "application message"
)

var (
	ctx          = context.Background()
	errSomething = errors.New("some error")
)

// // //  ///  /// /// ///
// // // fakes /// /// ///
// // //  ///  /// /// ///

// fakeSpan is an implementation of Span that is minimal for asserting tests.
type fakeSpan struct {
	embedded.Span

	eventName    string
	eventOptions []trace.EventOption

	statusErrorCode codes.Code
	statusErrorMsg  string
}

var _ trace.Span = (*fakeSpan)(nil)

func (*fakeSpan) SpanContext() trace.SpanContext {
	return trace.SpanContext{}.WithTraceID([16]byte{1}).WithSpanID([8]byte{1})
}

func (*fakeSpan) IsRecording() bool { return true }

func (s *fakeSpan) SetStatus(code codes.Code, msg string) {
	s.statusErrorCode = code
	s.statusErrorMsg = msg
}

func (*fakeSpan) SetAttributes(...attribute.KeyValue) {}

func (*fakeSpan) End(...trace.SpanEndOption) {}

func (*fakeSpan) RecordError(error, ...trace.EventOption) {}

func (s *fakeSpan) AddEvent(name string, opts ...trace.EventOption) {
	s.eventName = name
	s.eventOptions = opts
}

func (*fakeSpan) AddLink(trace.Link) {}

func (*fakeSpan) SetName(string) {}

func (*fakeSpan) TracerProvider() trace.TracerProvider { return noop.NewTracerProvider() } //nolint:ireturn

type failingHandler struct{}

var _ slog.Handler = (*failingHandler)(nil)

func (f failingHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (f failingHandler) Handle(_ context.Context, _ slog.Record) error {
	return errSomething
}

func (f failingHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	panic("implement me")
}

func (f failingHandler) WithGroup(_ string) slog.Handler {
	panic("implement me")
}
