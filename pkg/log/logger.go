package log

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu       sync.Mutex
	logFile  *os.File
	curLevel slog.Level
)

// Init initializes the global logger.
// Logs go to the file at path, or to stderr when path is empty, so they never
// mix with command output on stdout. Calling Init again closes the previous file.
//
// level: Log level ("debug", "info", "warn", "error"). Defaults to "warn".
func Init(path string, level string) error {
	mu.Lock()
	defer mu.Unlock()

	var w io.Writer = os.Stderr
	var f *os.File
	if path != "" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}

		var err error
		f, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		w = f
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f

	setDefault(w, ParseLevel(level))
	return nil
}

func setDefault(w io.Writer, l slog.Level) {
	curLevel = l
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})))
}

// Close closes the log file opened by Init, if any. Later records go to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	setDefault(os.Stderr, curLevel)
	return err
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
