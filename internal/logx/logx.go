package logx

import (
	"context"

	"pkt.systems/pslog"
	"pkt.systems/tabterm/schema"
)

type contextKey int

const (
	pageKey contextKey = iota
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithPage annotates the logger with the page index and title.
func WithPage(log pslog.Logger, index int, title string) pslog.Logger {
	log = log.With("page", index)
	if title != "" {
		log = log.With("title", title)
	}
	return log
}

// WithPageCtx annotates the context logger with the page unless the context
// already carries the same page marker.
func WithPageCtx(ctx context.Context, index int, title string) pslog.Logger {
	log := pslog.Ctx(ctx)
	if current, ok := ctx.Value(pageKey).(int); ok && current == index {
		return log
	}
	return WithPage(log, index, title)
}

// WithKey annotates the logger with a decoded key name.
func WithKey(log pslog.Logger, key schema.Key) pslog.Logger {
	return log.With("key", key.String())
}

// WithSize annotates the logger with terminal dimensions.
func WithSize(log pslog.Logger, size schema.Size) pslog.Logger {
	return log.With("cols", size.Cols).With("rows", size.Rows)
}

// ContextWithPage stores the page marker on the context for log de-duplication.
func ContextWithPage(ctx context.Context, index int) context.Context {
	if ctx == nil || index < 0 {
		return ctx
	}
	return context.WithValue(ctx, pageKey, index)
}

// ContextWithPageLogger attaches the page-annotated logger and marker to the context.
func ContextWithPageLogger(ctx context.Context, log pslog.Logger, index int, title string) context.Context {
	ctx = pslog.ContextWithLogger(ctx, WithPage(log, index, title))
	return ContextWithPage(ctx, index)
}
