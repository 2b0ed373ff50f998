// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framesync

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine,
// including the render thread.
var loggerPtr atomic.Pointer[slog.Logger]

// attached holds render contexts that accept a logger, so SetLogger reaches
// contexts wired before it was called.
var (
	attachedMu sync.Mutex
	attached   []loggerSetter
)

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for framesync and every render context
// attached to a DrawFrameTask. By default nothing is logged.
//
// SetLogger is safe for concurrent use. Pass nil to restore silence.
//
// Log levels used by framesync:
//   - [slog.LevelDebug]: per-frame diagnostics (dropped frames, suppressed hints)
//   - [slog.LevelInfo]: lifecycle events (context attached)
//   - [slog.LevelWarn]: degraded operation (texture cache pressure)
//
// Example:
//
//	framesync.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	attachedMu.Lock()
	targets := slices.Clone(attached)
	attachedMu.Unlock()
	for _, t := range targets {
		t.SetLogger(l)
	}
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by render contexts that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// attachLogger hands the current logger to v if it accepts one and
// remembers it for later SetLogger calls.
func attachLogger(v any) {
	ls, ok := v.(loggerSetter)
	if !ok {
		return
	}
	attachedMu.Lock()
	if !slices.Contains(attached, ls) {
		attached = append(attached, ls)
	}
	attachedMu.Unlock()
	ls.SetLogger(Logger())
}

// detachLogger forgets v.
func detachLogger(v any) {
	ls, ok := v.(loggerSetter)
	if !ok {
		return
	}
	attachedMu.Lock()
	attached = slices.DeleteFunc(attached, func(x loggerSetter) bool { return x == ls })
	attachedMu.Unlock()
}
