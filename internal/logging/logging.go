package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const DefaultLevel = "info"

var (
	mu           sync.Mutex
	traceEnabled bool
	logFile      *os.File
	logger       = newLogger(io.Discard)
)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	return l
}

// Configure points the shared logger at path with the given level. An empty
// path discards output. Parent directories are created when missing.
func Configure(path, level string) error {
	mu.Lock()
	defer mu.Unlock()

	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	if strings.TrimSpace(path) == "" {
		logger.SetOutput(io.Discard)
		logger.SetLevel(lvl)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.SetOutput(io.Discard)
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	logger.SetOutput(f)
	logger.SetLevel(lvl)
	return nil
}

// SetOutput redirects log output; tests use it to capture entries.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// Close releases the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger.SetOutput(io.Discard)
}

func parseLevel(level string) (logrus.Level, error) {
	trimmed := strings.TrimSpace(level)
	if trimmed == "" {
		trimmed = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(trimmed)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// Trace records a named event with its fields when tracing is enabled. Trace
// entries bypass the configured level.
func Trace(event string, fields map[string]interface{}) {
	mu.Lock()
	enabled := traceEnabled
	mu.Unlock()
	if !enabled {
		return
	}
	entry := logger.WithField("event", event)
	if len(fields) > 0 {
		entry = entry.WithFields(logrus.Fields(fields))
	}
	entry.Log(logrus.InfoLevel, "trace")
}

// Error logs err at error level.
func Error(err error) {
	if err == nil {
		return
	}
	logger.WithError(err).Error("error")
}

// Warnf logs a formatted warning.
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Infof logs a formatted informational message.
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}
