// Package app provides the contracts of use cases in the application layer
// and common decorators for them.
package app

import (
	"context"
	"reflect"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/kernel/alog"
)

// Request can produce side effects and return data.
type Request[Req any, Res any] interface {
	H(ctx context.Context, req Req) (Res, error)
}

// Command produces side effects, e.g. mutate state.
type Command[C any] interface {
	H(ctx context.Context, cmd C) error
}

// Query does not produce side effects and returns data.
type Query[Q any, Res any] interface {
	H(ctx context.Context, query Q) (Res, error)
}

// RequestFunc adapts a function to a Request.
type RequestFunc[Req any, Res any] func(ctx context.Context, req Req) (Res, error)

func (f RequestFunc[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn // valid use of generics
	return f(ctx, req)
}

// CommandFunc adapts a function to a Command.
type CommandFunc[C any] func(ctx context.Context, cmd C) error

func (f CommandFunc[C]) H(ctx context.Context, cmd C) error {
	return f(ctx, cmd)
}

// QueryFunc adapts a function to a Query.
type QueryFunc[Q any, Res any] func(ctx context.Context, query Q) (Res, error)

func (f QueryFunc[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn // valid use of generics
	return f(ctx, query)
}

// NewInstrumentedRequest is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedRequest[Req any, Res any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger alog.Logger,
	req Request[Req, Res],
) Request[Req, Res] {
	return NewTracedRequest(traceProvider, NewMeteredRequest(meterProvider, NewLoggedRequest(logger, req)))
}

// NewInstrumentedCommand is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedCommand[C any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger alog.Logger,
	cmd Command[C],
) Command[C] {
	return NewTracedCommand(traceProvider, NewMeteredCommand(meterProvider, NewLoggedCommand(logger, cmd)))
}

// NewInstrumentedQuery is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedQuery[Q any, Res any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger alog.Logger,
	query Query[Q, Res],
) Query[Q, Res] {
	return NewTracedQuery(traceProvider, NewMeteredQuery(meterProvider, NewLoggedQuery(logger, query)))
}

// commandName extracts a printable name from cmd in the format of: packageName.structName.
// The use case function can not be used, as it is a closure returned by the use case constructor.
func commandName(cmd any) string {
	t := reflect.TypeOf(cmd)
	if t == nil {
		return "<nil>"
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.String()
}

// instrumentationName is the name of the tracer and meter of all decorators.
const instrumentationName = "github.com/go-arrower/kernel/app"

// Keyed is implemented by use case inputs that address a single key value.
// The decorators add the key to the logs and spans of the use case.
type Keyed interface {
	TargetKey() string
}

// kind is the kind of use case a decorator wraps.
type kind string

const (
	kindRequest kind = "request"
	kindCommand kind = "command"
	kindQuery   kind = "query"
)

// targetKey returns the key of in, if in is Keyed.
func targetKey(in any) (string, bool) {
	if k, ok := in.(Keyed); ok {
		return k.TargetKey(), true
	}

	return "", false
}
