// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides the leveled, key-value logger used across the repo.
// Packages obtain a scoped logger via WithContext("pkg", "<name>").
package log

import (
	"context"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// Logger is the leveled key-value logger handed out to packages.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	With(ctx ...any) Logger
}

const LevelTrace = slog.Level(-8)

type logger struct {
	inner *slog.Logger
}

func (l *logger) Trace(msg string, ctx ...any) {
	l.inner.Log(context.Background(), LevelTrace, msg, ctx...)
}
func (l *logger) Debug(msg string, ctx ...any) { l.inner.Debug(msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.inner.Info(msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.inner.Warn(msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.inner.Error(msg, ctx...) }

func (l *logger) With(ctx ...any) Logger {
	return &logger{l.inner.With(ctx...)}
}

var (
	rootLevel = new(slog.LevelVar)
	root      = &logger{slog.New(newTerminalHandler(os.Stderr, rootLevel, useColor()))}
)

func useColor() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// Root returns the root logger.
func Root() Logger {
	return root
}

// WithContext returns a logger carrying the given context pairs.
func WithContext(ctx ...any) Logger {
	return root.With(ctx...)
}

// SetVerbosity sets the verbosity of the root logger.
// 0=error 1=warn 2=info 3=debug 4=trace
func SetVerbosity(v int) {
	switch {
	case v <= 0:
		rootLevel.Set(slog.LevelError)
	case v == 1:
		rootLevel.Set(slog.LevelWarn)
	case v == 2:
		rootLevel.Set(slog.LevelInfo)
	case v == 3:
		rootLevel.Set(slog.LevelDebug)
	default:
		rootLevel.Set(LevelTrace)
	}
}
