package app

import (
	"context"
	"log/slog"

	"github.com/go-arrower/kernel/alog"
)

// useCaseLogger logs the start and the outcome of a use case at debug level.
// The messages read "executing command", "command executed successfully" and so on.
type useCaseLogger struct {
	logger alog.Logger
	kind   kind
}

func (l useCaseLogger) attrs(in any) []any {
	attrs := []any{slog.String("command", commandName(in))}
	if key, ok := targetKey(in); ok {
		attrs = append(attrs, slog.String("key", key))
	}

	return attrs
}

func (l useCaseLogger) before(ctx context.Context, in any) []any {
	attrs := l.attrs(in)
	l.logger.Debug(ctx, "executing "+string(l.kind), attrs...)

	return attrs
}

func (l useCaseLogger) after(ctx context.Context, attrs []any, err error) {
	if err != nil {
		l.logger.Debug(ctx, "failed to execute "+string(l.kind), append(attrs, slog.String("error", err.Error()))...)
		return
	}

	l.logger.Debug(ctx, string(l.kind)+" executed successfully", attrs...)
}

func NewLoggedRequest[Req any, Res any](logger alog.Logger, handler Request[Req, Res]) Request[Req, Res] {
	return &requestLoggingDecorator[Req, Res]{
		log:  useCaseLogger{logger: logger, kind: kindRequest},
		base: handler,
	}
}

type requestLoggingDecorator[Req any, Res any] struct {
	log  useCaseLogger
	base Request[Req, Res]
}

func (d *requestLoggingDecorator[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn,lll // valid use of generics
	attrs := d.log.before(ctx, req)

	res, err := d.base.H(ctx, req)
	d.log.after(ctx, attrs, err)

	return res, err //nolint:wrapcheck // decorate but not change anything
}

func NewLoggedCommand[C any](logger alog.Logger, handler Command[C]) Command[C] {
	return &commandLoggingDecorator[C]{
		log:  useCaseLogger{logger: logger, kind: kindCommand},
		base: handler,
	}
}

type commandLoggingDecorator[C any] struct {
	log  useCaseLogger
	base Command[C]
}

func (d *commandLoggingDecorator[C]) H(ctx context.Context, cmd C) error {
	attrs := d.log.before(ctx, cmd)

	err := d.base.H(ctx, cmd)
	d.log.after(ctx, attrs, err)

	return err //nolint:wrapcheck // decorate but not change anything
}

func NewLoggedQuery[Q any, Res any](logger alog.Logger, handler Query[Q, Res]) Query[Q, Res] {
	return &queryLoggingDecorator[Q, Res]{
		log:  useCaseLogger{logger: logger, kind: kindQuery},
		base: handler,
	}
}

type queryLoggingDecorator[Q any, Res any] struct {
	log  useCaseLogger
	base Query[Q, Res]
}

func (d *queryLoggingDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn,lll // valid use of generics
	attrs := d.log.before(ctx, query)

	res, err := d.base.H(ctx, query)
	d.log.after(ctx, attrs, err)

	return res, err //nolint:wrapcheck // decorate but not change anything
}
