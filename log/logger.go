// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides structured logging built on log/slog.
// The root logger discards everything until a handler is installed, so
// library code can log unconditionally.
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

// Logger writes key/value structured records.
type Logger interface {
	// With returns a logger that includes the given attributes in each output.
	With(ctx ...any) Logger

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
}

const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// LevelString returns a 5-character string containing the name of a level.
func LevelString(l slog.Level) string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// logger resolves its handler on every write, so loggers created at package
// init pick up a handler installed later via SetRootHandler.
type logger struct {
	h     slog.Handler // nil means the current root handler
	attrs []any
}

func (l *logger) handler() slog.Handler {
	if l.h != nil {
		return l.h
	}
	return rootHandler.Load().(handlerHolder).h
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{
		h:     l.h,
		attrs: append(l.attrs[:len(l.attrs):len(l.attrs)], ctx...),
	}
}

func (l *logger) write(level slog.Level, msg string, ctx ...any) {
	h := l.handler()
	if !h.Enabled(context.Background(), level) {
		return
	}
	r := slog.NewRecord(time.Now(), level, msg, 0)
	r.Add(l.attrs...)
	r.Add(ctx...)
	_ = h.Handle(context.Background(), r)
}

func (l *logger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any) { l.write(LevelDebug, msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.write(LevelInfo, msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.write(LevelWarn, msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.write(LevelError, msg, ctx...) }

type handlerHolder struct {
	h slog.Handler
}

var rootHandler atomic.Value

func init() {
	rootHandler.Store(handlerHolder{DiscardHandler()})
}

// SetRootHandler installs the handler used by the root logger and by every
// logger derived from it, including those derived before the call.
func SetRootHandler(h slog.Handler) {
	rootHandler.Store(handlerHolder{h})
}

// Root returns the root logger.
func Root() Logger {
	return &logger{}
}

// WithContext returns a logger derived from the root logger carrying the
// given attributes.
func WithContext(ctx ...any) Logger {
	return Root().With(ctx...)
}

// NewLogger creates a logger bound to the given handler.
func NewLogger(h slog.Handler) Logger {
	return &logger{h: h}
}

// StderrHandler returns a logfmt handler writing to stderr at the given level.
func StderrHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
}

type discardHandler struct{}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return discardHandler{}
}

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
