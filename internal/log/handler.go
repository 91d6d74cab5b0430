package log

import (
	"context"
	"log/slog"

	"github.com/ErlanBelekov/estate-listings/internal/requestid"
)

// ContextHandler enriches records with the request id, the authenticated
// user and any attrs attached through WithAttrs. A key the call site already
// set on the record is not repeated.
type ContextHandler struct {
	inner slog.Handler
}

func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	extra := contextAttrs(ctx)
	if len(extra) == 0 {
		return h.inner.Handle(ctx, r)
	}

	set := make(map[string]struct{}, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		set[a.Key] = struct{}{}
		return true
	})
	for _, a := range extra {
		if _, dup := set[a.Key]; !dup {
			r.AddAttrs(a)
		}
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}

// contextAttrs lists request_id and user_id first, then WithAttrs values.
func contextAttrs(ctx context.Context) []slog.Attr {
	var out []slog.Attr
	if id := requestid.FromContext(ctx); id != "" {
		out = append(out, slog.String("request_id", id))
	}
	if uid, ok := UserIDFromContext(ctx); ok {
		out = append(out, slog.Int64("user_id", uid))
	}
	return append(out, attrsFromContext(ctx)...)
}
