package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var debugLog = newDebugLogger()

// newDebugLogger returns a file-backed logger when WTS_DEBUG is set,
// otherwise a logger that discards everything. The TUI owns the
// terminal, so debug output never goes to stderr.
func newDebugLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if !debugEnabled() {
		return logger
	}
	home := strings.TrimSpace(os.Getenv("HOME"))
	if home == "" {
		return logger
	}
	dir := filepath.Join(home, ".local", "state", "wts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return logger
	}
	file, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return logger
	}
	logger.SetOutput(file)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger
}

func debugf(format string, args ...any) {
	debugLog.Debugf(format, args...)
}
