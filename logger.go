// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textatlas

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/textatlas/gpu"
	"github.com/gogpu/textatlas/text"
)

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// loggerPtr stores the active logger. Accessed atomically for thread safety.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// slogger returns the current package logger.
func slogger() *slog.Logger { return loggerPtr.Load() }

// SetLogger configures the logger for textatlas and all its sub-packages.
// By default, textatlas produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by textatlas:
//   - [slog.LevelDebug]: glyph rasterization, atlas uploads, resource creation
//   - [slog.LevelInfo]: shared device selection
//   - [slog.LevelWarn]: skipped glyphs, invalid shapes, failed segmentation
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
	text.SetLogger(l)
	gpu.SetLogger(l)
}

// Logger returns the current logger used by textatlas.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
