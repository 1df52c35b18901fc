// Package logging configures the process-wide slog logger. Logs go to a
// rotating file so they never interleave with the interactive prompt.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"ollama-assistant/internal/config"
)

const (
	defaultLogFile = "assistant.log"
	maxLogSizeMB   = 5
	maxLogBackups  = 3
	maxLogAgeDays  = 14
)

// Setup installs a slog default logger built from cfg and returns it. When the
// log directory cannot be created the returned logger discards everything and
// the error is reported to the caller.
func Setup(cfg *config.Config) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}

	logPath := strings.TrimSpace(cfg.LogFile)
	if logPath == "" {
		logPath = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		logger := slog.New(newHandler(cfg.LogFormat, io.Discard, opts))
		slog.SetDefault(logger)
		return logger, err
	}

	writer := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}

	logger := slog.New(newHandler(cfg.LogFormat, writer, opts))
	slog.SetDefault(logger)
	return logger, nil
}

// DefaultPath is where logs go when LOG_FILE is unset.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return filepath.Join(".ollama-assistant", "logs", defaultLogFile)
	}
	return filepath.Join(home, ".ollama-assistant", "logs", defaultLogFile)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}
