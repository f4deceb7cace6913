// Package log provides the vcadmin debug logger. User-facing output goes
// through internal/ui or the command writers; this logger is for diagnostics.
package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

// Options configures the logger.
type Options struct {
	// Verbose surfaces debug/info on stderr (ignored in interactive mode)
	Verbose bool
	// JSONFormat switches stderr from text lines to JSON records
	JSONFormat bool
	// Interactive keeps stderr at Warn+ regardless of Verbose, so the
	// console menus stay readable
	Interactive bool
	// DebugDir receives a dated JSONL file with every record; empty
	// disables file logging
	DebugDir string
	// RetentionDays prunes debug files older than this many days (0 keeps all)
	RetentionDays int
	// Stderr overrides os.Stderr (for testing)
	Stderr io.Writer
}

var (
	base      = slog.Default()
	logger    = base
	debugFile *fileWriter
)

// Init builds the global logger: a stderr handler at the level the flags ask
// for, plus an always-debug JSONL file handler when DebugDir is set.
func Init(opts Options) error {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	level := slog.LevelWarn
	if opts.Verbose && !opts.Interactive {
		level = slog.LevelDebug
	}

	var h slog.Handler
	if opts.JSONFormat {
		h = slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level})
	} else {
		h = slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	}
	handlers := fanout{h}

	if opts.DebugDir != "" {
		if opts.RetentionDays > 0 {
			cleanupOld(opts.DebugDir, opts.RetentionDays)
		}
		fw, err := newFileWriter(opts.DebugDir)
		if err != nil {
			return err
		}
		debugFile = fw
		handlers = append(handlers, slog.NewJSONHandler(fw, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	base = slog.New(handlers)
	logger = base
	slog.SetDefault(logger)
	return nil
}

// Close closes the debug file if one was opened.
func Close() {
	if debugFile != nil {
		debugFile.Close()
		debugFile = nil
	}
}

// SetOperation tags every subsequent record with the operation in flight, so
// the debug file reads per-operation.
func SetOperation(op string) {
	logger = base.With("op", op)
	slog.SetDefault(logger)
}

// ClearOperation drops the operation tag.
func ClearOperation() {
	logger = base
	slog.SetDefault(logger)
}

// fanout hands each record to every handler that wants it.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// Debug logs at debug level.
func Debug(msg string, args ...any) { logger.Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { logger.Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { logger.Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { logger.Error(msg, args...) }

// With returns a logger carrying extra attrs.
func With(args ...any) *slog.Logger { return logger.With(args...) }
