// Package logger implements ports.Logger on log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/crxbuild/internal/core/ports"
)

// messager is implemented by zerr errors: Message reports the error's own text
// without the wrapped chain.
type messager interface {
	Message() string
}

// metadataer is implemented by zerr errors carrying zerr.With metadata.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	output   io.Writer
	level    slog.Level
	jsonMode bool
}

var _ ports.Logger = (*Logger)(nil)

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sets the destination of log records. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.output = w
	}
}

// WithJSON enables JSON records instead of the pretty terminal format.
func WithJSON(enable bool) Option {
	return func(l *Logger) {
		l.jsonMode = enable
	}
}

// WithLevel sets the minimum level that is logged.
func WithLevel(level slog.Level) Option {
	return func(l *Logger) {
		l.level = level
	}
}

// New creates a Logger writing pretty records to stderr unless configured otherwise.
func New(opts ...Option) *Logger {
	l := &Logger{
		output: os.Stderr,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.rebuild()
	return l
}

// SetOutput replaces the output destination, keeping the current format.
// A nil writer selects os.Stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty records, keeping the output destination.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// rebuild swaps the slog handler. Callers hold mu or own l exclusively.
func (l *Logger) rebuild() {
	if l.output == nil {
		l.output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: l.level}
	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = NewPrettyHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its full cause chain. Nil errors are ignored.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err.Error())
		return
	}
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// collectErrorEntries walks the zerr chain of err. The first non-zerr error ends
// the walk with its full Error text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entry := ErrorEntry{Message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}
	return entries
}

// formatErrorEntries renders entries as a main error followed by a "Caused by"
// list. Metadata keys are sorted.
func formatErrorEntries(entries []ErrorEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var lines []string
	for i, entry := range entries {
		head, indent := "Error: ", "       "
		if i > 0 {
			head, indent = "    → ", "      "
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
		}

		msgLines := strings.Split(entry.Message, "\n")
		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}
	return strings.Join(lines, "\n")
}
