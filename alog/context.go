package alog

import (
	"context"
	"log/slog"
)

type ctxAttrKey struct{}

// AddAttr adds a single attribute to ctx. All attributes in the ctx will be logged.
func AddAttr(ctx context.Context, attr slog.Attr) context.Context {
	return AddAttrs(ctx, attr)
}

// AddAttrs adds multiple attributes to ctx. All attributes in the ctx will be logged.
func AddAttrs(ctx context.Context, newAttrs ...slog.Attr) context.Context {
	attrs, _ := FromContext(ctx)

	// contexts derived from the same parent must not share the backing array
	all := make([]slog.Attr, 0, len(attrs)+len(newAttrs))
	all = append(all, attrs...)
	all = append(all, newAttrs...)

	return context.WithValue(ctx, ctxAttrKey{}, all)
}

// FromContext returns the attributes added to ctx by AddAttr or AddAttrs.
func FromContext(ctx context.Context) ([]slog.Attr, bool) {
	attrs, ok := ctx.Value(ctxAttrKey{}).([]slog.Attr)

	return attrs, ok
}
