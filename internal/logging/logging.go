// Package logging provides slog-based logging for the slotcast CLI and
// playground.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/slotcast/slotcast/internal/paths"
)

// DefaultLogPath returns the default log file path
// (~/.slotcast/slotcast.log, honoring SLOTCAST_DIR).
func DefaultLogPath() string {
	base, err := paths.BaseDir()
	if err != nil {
		return "/tmp/slotcast.log"
	}
	return filepath.Join(base, "slotcast.log")
}

// ParseLevel converts a log level string to slog.Level.
// Valid values: "debug", "info", "warn", "error" (case-insensitive).
// Returns slog.LevelInfo for unrecognized values.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes the global slog logger to write to the specified path.
// If path is empty, uses DefaultLogPath().
// The level parameter controls logging verbosity (use ParseLevel to convert
// from string). Returns a cleanup function to close the log file.
func Setup(path string, level slog.Level) (cleanup func(), err error) {
	if path == "" {
		path = DefaultLogPath()
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	// Open log file (append mode, create if not exists)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return func() { f.Close() }, nil
}

// SetupMulti initializes logging to both file and an additional writer
// (e.g., stderr). Useful when running scenarios with --verbose so
// dispatcher diagnostics show up alongside the delivery transcript.
func SetupMulti(path string, extra io.Writer, level slog.Level) (cleanup func(), err error) {
	if path == "" {
		path = DefaultLogPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	w := io.MultiWriter(f, extra)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return func() { f.Close() }, nil
}

// SetupTest configures logging for tests (writes to provided writer, text
// format).
func SetupTest(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))
}

// FuncHandler is a slog.Handler that passes each record to a function. The
// playground uses it to surface dispatcher diagnostics in the transcript
// instead of a log file. Groups are flattened; attrs added via With are
// appended to each record.
type FuncHandler struct {
	level slog.Level
	fn    func(slog.Record)
	attrs []slog.Attr
}

// NewFuncHandler returns a FuncHandler passing records at or above level
// to fn.
func NewFuncHandler(level slog.Level, fn func(slog.Record)) *FuncHandler {
	return &FuncHandler{level: level, fn: fn}
}

// Enabled implements slog.Handler.
func (h *FuncHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler.
func (h *FuncHandler) Handle(_ context.Context, r slog.Record) error {
	if len(h.attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(h.attrs...)
	}
	h.fn(r)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *FuncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &FuncHandler{level: h.level, fn: h.fn, attrs: merged}
}

// WithGroup implements slog.Handler. Group nesting is flattened away.
func (h *FuncHandler) WithGroup(string) slog.Handler {
	return h
}

// LogPanic logs a panic with stack trace and context.
// Use in a defer around code that runs user input, such as playground
// commands or Lua scripts:
//
//	defer logging.LogPanic("lua-run", nil)
//
// Or with a recovery callback:
//
//	defer logging.LogPanic("lua-run", func(r any) { cleanup() })
func LogPanic(name string, onRecover func(any)) {
	if r := recover(); r != nil {
		slog.Error("panic recovered",
			"in", name,
			"panic", r,
			"stack", string(captureStack()),
		)
		if onRecover != nil {
			onRecover(r)
		}
	}
}

// captureStack returns the current goroutine's stack trace.
func captureStack() []byte {
	buf := make([]byte, 4096)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, len(buf)*2)
	}
}
