// Package log is a context wrapper around slog.Logger
package log

import (
	"context"
	"io"
	stdlog "log"
	"os"
	"sync"
	"testing"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"cdr.dev/slog/sloggers/slogtest"

	"oss.terrastruct.com/tailor/lib/env"
)

var _default = slog.Make(sloghuman.Sink(os.Stderr)).Named("default")

// Library callers rarely attach a logger so the missing logger warning is only emitted once.
var warnMissing sync.Once

type loggerKey struct{}

func from(ctx context.Context) slog.Logger {
	l, ok := ctx.Value(loggerKey{}).(slog.Logger)
	if !ok {
		if env.Debug() {
			warnMissing.Do(func() {
				_default.Warn(ctx, "missing slog.Logger in context, see lib/log.With")
			})
		}
		return _default.Leveled(slog.LevelWarn)
	}
	return l
}

func With(ctx context.Context, l slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// WithDefault attaches the stderr logger unless ctx already carries one.
func WithDefault(ctx context.Context) context.Context {
	if _, ok := ctx.Value(loggerKey{}).(slog.Logger); ok {
		return ctx
	}
	return Stderr(ctx)
}

// WithTB calls With with the result of slogtest.Make.
func WithTB(ctx context.Context, t testing.TB, opts *slogtest.Options) context.Context {
	l := slogtest.Make(t, opts)
	if env.Debug() {
		l = l.Leveled(slog.LevelDebug)
	}
	return With(ctx, l)
}

// Discard drops everything logged through ctx.
func Discard(ctx context.Context) context.Context {
	return With(ctx, slog.Make(sloghuman.Sink(io.Discard)))
}

func Debug(ctx context.Context, msg string, fields ...slog.Field) {
	slog.Helper()
	from(ctx).Debug(ctx, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...slog.Field) {
	slog.Helper()
	from(ctx).Warn(ctx, msg, fields...)
}

func Named(ctx context.Context, name string) context.Context {
	return With(ctx, from(ctx).Named(name))
}

func Leveled(ctx context.Context, level slog.Level) context.Context {
	return With(ctx, from(ctx).Leveled(level))
}

func Sync(ctx context.Context) {
	from(ctx).Sync()
}

func Stderr(ctx context.Context) context.Context {
	l := slog.Make(sloghuman.Sink(os.Stderr))
	if env.Debug() {
		l = l.Leveled(slog.LevelDebug)
	}

	if !env.Test() {
		sl := slog.Stdlib(ctx, l, slog.LevelInfo)
		stdlog.SetOutput(sl.Writer())
	}

	return With(ctx, l)
}
