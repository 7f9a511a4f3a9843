// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

const (
	timeFormat = "Jan 02 15:04:05"

	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorGreen  = "\x1b[32m"
	colorCyan   = "\x1b[36m"
	colorBlue   = "\x1b[34m"
)

// TerminalHandler formats records for human readability on a terminal:
//
//	[LEVL] [TIME] MESSAGE key=value key=value ...
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr
}

// NewTerminalHandler returns a terminal handler writing records at or above
// the given level.
func NewTerminalHandler(wr io.Writer, level slog.Level, useColor bool) *TerminalHandler {
	var lvl slog.LevelVar
	lvl.Set(level)
	return &TerminalHandler{
		wr:       wr,
		lvl:      &lvl,
		useColor: useColor,
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := make([]byte, 0, 128)
	lvl := levelTag(r.Level)
	if h.useColor {
		buf = append(buf, levelColor(r.Level)...)
		buf = append(buf, '[')
		buf = append(buf, lvl...)
		buf = append(buf, ']')
		buf = append(buf, colorReset...)
	} else {
		buf = append(buf, '[')
		buf = append(buf, lvl...)
		buf = append(buf, ']')
	}
	buf = append(buf, " ["...)
	buf = r.Time.AppendFormat(buf, timeFormat)
	buf = append(buf, "] "...)
	buf = append(buf, r.Message...)

	appendAttr := func(a slog.Attr) bool {
		buf = append(buf, ' ')
		buf = append(buf, a.Key...)
		buf = append(buf, '=')
		buf = fmt.Append(buf, a.Value.Resolve().Any())
		return true
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(appendAttr)
	buf = append(buf, '\n')

	_, err := h.wr.Write(buf)
	return err
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *TerminalHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:       h.wr,
		lvl:      h.lvl,
		useColor: h.useColor,
		attrs:    append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

func levelTag(l slog.Level) string {
	switch {
	case l <= LevelTrace:
		return "TRCE"
	case l <= LevelDebug:
		return "DBUG"
	case l <= LevelInfo:
		return "INFO"
	case l <= LevelWarn:
		return "WARN"
	default:
		return "EROR"
	}
}

func levelColor(l slog.Level) string {
	switch {
	case l <= LevelTrace:
		return colorBlue
	case l <= LevelDebug:
		return colorCyan
	case l <= LevelInfo:
		return colorGreen
	case l <= LevelWarn:
		return colorYellow
	default:
		return colorRed
	}
}
