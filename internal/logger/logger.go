package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Logger defines the logging interface used throughout GitLive.
type Logger interface {
	// Info logs an internal informational message (file only, unless verbose).
	Info(format string, args ...interface{})

	// Warning logs an internal warning (file only, unless verbose).
	Warning(format string, args ...interface{})

	// Error logs an internal error. Always surfaced to stderr.
	Error(format string, args ...interface{})

	// InfoToUser always prints an informational message to the console.
	InfoToUser(format string, args ...interface{})

	// WarningToUser always prints a warning to the console.
	WarningToUser(format string, args ...interface{})

	// Success prints a success message to the console.
	Success(format string, args ...interface{})

	// StatusMessage prints a status line to the console (no file logging).
	StatusMessage(format string, args ...interface{})

	// Close flushes and closes any open log file handle.
	Close() error
}

// defaultLogger is the default zerolog-backed Logger implementation.
type defaultLogger struct {
	mu      sync.Mutex
	file    *zerolog.Logger
	fileH   *os.File
	console io.Writer
	errOut  io.Writer
	verbose bool
}

// New creates a Logger. When logFile is non-empty, internal log records
// are written there as JSON; console output always goes to stdout/stderr.
func New(logFile string, verbose bool) Logger {
	return NewWithOutput(logFile, verbose, os.Stdout, os.Stderr)
}

// NewWithOutput creates a Logger with injectable console streams, for tests.
func NewWithOutput(logFile string, verbose bool, stdout, stderr io.Writer) *defaultLogger {
	l := &defaultLogger{
		console: stdout,
		errOut:  stderr,
		verbose: verbose,
	}

	if logFile != "" {
		dir := filepath.Dir(logFile)
		if dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				_, _ = fmt.Fprintf(stderr, "⚠️  failed to create log directory: %v\n", err)
			}
		}

		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "⚠️  failed to open log file: %v, continuing without file logging\n", err)
		} else {
			l.fileH = f
			fl := zerolog.New(f).With().Timestamp().Logger()
			l.file = &fl
			l.file.Info().Msg("gitlive log started")
		}
	}

	return l
}

func (l *defaultLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if l.file != nil {
		l.file.Info().Msg(msg)
	}
	if l.verbose {
		_, _ = fmt.Fprintf(l.console, "ℹ️  %s\n", msg)
	}
}

func (l *defaultLogger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if l.file != nil {
		l.file.Warn().Msg(msg)
	}
	if l.verbose {
		_, _ = fmt.Fprintf(l.console, "⚠️  %s\n", msg)
	}
}

func (l *defaultLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if l.file != nil {
		l.file.Error().Msg(msg)
	}
	_, _ = fmt.Fprintf(l.errOut, "❌ %s\n", msg)
}

func (l *defaultLogger) InfoToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if l.file != nil {
		l.file.Info().Msg(msg)
	}
	_, _ = fmt.Fprintf(l.console, "ℹ️  %s\n", msg)
}

func (l *defaultLogger) WarningToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if l.file != nil {
		l.file.Warn().Msg(msg)
	}
	_, _ = fmt.Fprintf(l.console, "⚠️  %s\n", msg)
}

func (l *defaultLogger) Success(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if l.file != nil {
		l.file.Info().Msg(msg)
	}
	_, _ = fmt.Fprintf(l.console, "✅ %s\n", msg)
}

func (l *defaultLogger) StatusMessage(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintln(l.console, fmt.Sprintf(format, args...))
}

func (l *defaultLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fileH != nil {
		if err := l.fileH.Sync(); err != nil {
			return err
		}
		return l.fileH.Close()
	}
	return nil
}

// SetConsole overrides the console writer; primarily for tests.
func (l *defaultLogger) SetConsole(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = w
}

// SetErrOut overrides the stderr writer; primarily for tests.
func (l *defaultLogger) SetErrOut(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errOut = w
}
