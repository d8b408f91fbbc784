// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
)

const (
	timeFormat    = "Jan 02 15:04:05"
	termCtxMaxPad = 40
)

// terminalHandler formats records for human readability on a terminal:
//
//	[LEVEL] [TIME] MESSAGE key=value key=value ...
type terminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr

	// fieldPadding keeps maximum field value lengths seen until now
	// to allow padding log contexts in a smarter way.
	fieldPadding map[string]int

	buf []byte
}

func newTerminalHandler(wr io.Writer, lvl *slog.LevelVar, useColor bool) *terminalHandler {
	return &terminalHandler{
		wr:           wr,
		lvl:          lvl,
		useColor:     useColor,
		fieldPadding: make(map[string]int),
	}
}

func (h *terminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := h.buf[:0]
	buf = append(buf, '[')
	if h.useColor {
		buf = append(buf, levelColor(r.Level)...)
		buf = append(buf, levelString(r.Level)...)
		buf = append(buf, "\x1b[0m"...)
	} else {
		buf = append(buf, levelString(r.Level)...)
	}
	buf = append(buf, "] ["...)
	buf = r.Time.AppendFormat(buf, timeFormat)
	buf = append(buf, "] "...)
	buf = append(buf, r.Message...)

	for _, attr := range h.attrs {
		buf = h.appendAttr(buf, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		buf = h.appendAttr(buf, attr)
		return true
	})
	buf = append(buf, '\n')

	_, err := h.wr.Write(buf)
	h.buf = buf[:0]
	return err
}

func (h *terminalHandler) appendAttr(buf []byte, attr slog.Attr) []byte {
	buf = append(buf, ' ')
	if h.useColor {
		buf = append(buf, "\x1b[32m"...)
		buf = append(buf, attr.Key...)
		buf = append(buf, "\x1b[0m="...)
	} else {
		buf = append(buf, attr.Key...)
		buf = append(buf, '=')
	}
	val := formatValue(attr.Value)
	buf = append(buf, val...)

	// pad to the widest value seen for this key, capped
	pad := h.fieldPadding[attr.Key]
	if len(val) > pad && len(val) <= termCtxMaxPad {
		pad = len(val)
		h.fieldPadding[attr.Key] = pad
	}
	for i := len(val); i < pad; i++ {
		buf = append(buf, ' ')
	}
	return buf
}

func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &terminalHandler{
		wr:           h.wr,
		lvl:          h.lvl,
		useColor:     h.useColor,
		attrs:        append(append([]slog.Attr{}, h.attrs...), attrs...),
		fieldPadding: make(map[string]int),
	}
}

func (h *terminalHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

var _ slog.Handler = (*terminalHandler)(nil)

func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return escapeString(v.String())
	case slog.KindTime:
		return v.Time().Format(timeFormat)
	case slog.KindDuration:
		return v.Duration().String()
	default:
		if s, ok := v.Any().(fmt.Stringer); ok {
			return escapeString(s.String())
		}
		return escapeString(fmt.Sprintf("%v", v.Any()))
	}
}

func escapeString(s string) string {
	if s == "" {
		return `""`
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return strconv.Quote(s)
		}
	}
	return s
}

func levelString(l slog.Level) string {
	switch {
	case l < slog.LevelDebug:
		return "TRCE"
	case l < slog.LevelInfo:
		return "DBUG"
	case l < slog.LevelWarn:
		return "INFO"
	case l < slog.LevelError:
		return "WARN"
	default:
		return "EROR"
	}
}

func levelColor(l slog.Level) string {
	switch {
	case l < slog.LevelInfo:
		return "\x1b[36m"
	case l < slog.LevelWarn:
		return "\x1b[32m"
	case l < slog.LevelError:
		return "\x1b[33m"
	default:
		return "\x1b[31m"
	}
}
