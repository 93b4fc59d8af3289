package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// useCaseTracer starts one span per use case, named after its input, e.g. kv.InsertCommand.
type useCaseTracer struct {
	tracer trace.Tracer
	kind   kind
}

func newUseCaseTracer(traceProvider trace.TracerProvider, k kind) useCaseTracer {
	return useCaseTracer{tracer: traceProvider.Tracer(instrumentationName), kind: k}
}

func (t useCaseTracer) start(ctx context.Context, in any) (context.Context, trace.Span) {
	name := commandName(in)

	attrs := []attribute.KeyValue{
		attribute.String("command", name),
		attribute.String("usecase.kind", string(t.kind)),
	}
	if key, ok := targetKey(in); ok {
		attrs = append(attrs, attribute.String("kv.key", key))
	}

	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...), trace.WithSpanKind(trace.SpanKindInternal))
}

func (t useCaseTracer) end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}

func NewTracedRequest[Req any, Res any](traceProvider trace.TracerProvider, req Request[Req, Res]) Request[Req, Res] {
	return &requestTracingDecorator[Req, Res]{
		tracer: newUseCaseTracer(traceProvider, kindRequest),
		base:   req,
	}
}

type requestTracingDecorator[Req any, Res any] struct {
	tracer useCaseTracer
	base   Request[Req, Res]
}

func (d *requestTracingDecorator[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn,lll // valid use of generics
	ctx, span := d.tracer.start(ctx, req)

	res, err := d.base.H(ctx, req)
	d.tracer.end(span, err)

	return res, err //nolint:wrapcheck // decorate but not change anything
}

func NewTracedCommand[C any](traceProvider trace.TracerProvider, cmd Command[C]) Command[C] {
	return &commandTracingDecorator[C]{
		tracer: newUseCaseTracer(traceProvider, kindCommand),
		base:   cmd,
	}
}

type commandTracingDecorator[C any] struct {
	tracer useCaseTracer
	base   Command[C]
}

func (d *commandTracingDecorator[C]) H(ctx context.Context, cmd C) error {
	ctx, span := d.tracer.start(ctx, cmd)

	err := d.base.H(ctx, cmd)
	d.tracer.end(span, err)

	return err //nolint:wrapcheck // decorate but not change anything
}

func NewTracedQuery[Q any, Res any](traceProvider trace.TracerProvider, query Query[Q, Res]) Query[Q, Res] {
	return &queryTracingDecorator[Q, Res]{
		tracer: newUseCaseTracer(traceProvider, kindQuery),
		base:   query,
	}
}

type queryTracingDecorator[Q any, Res any] struct {
	tracer useCaseTracer
	base   Query[Q, Res]
}

func (d *queryTracingDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn,lll // valid use of generics
	ctx, span := d.tracer.start(ctx, query)

	res, err := d.base.H(ctx, query)
	d.tracer.end(span, err)

	return res, err //nolint:wrapcheck // decorate but not change anything
}
