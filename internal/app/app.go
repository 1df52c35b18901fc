package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"ollama-assistant/internal/cli"
	"ollama-assistant/internal/config"
	"ollama-assistant/internal/llm"
	"ollama-assistant/internal/logging"
	"ollama-assistant/internal/service"
)

// App holds the wired-up components of one assistant process.
type App struct {
	Config    *config.Config
	Transport llm.Transport
	Session   *service.Session
}

// NewApp builds the transport and session described by cfg.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	transport := llm.NewOllamaTransport(cfg.OllamaURL)
	session := service.NewSession(transport, service.Settings{
		SystemPrompt: cfg.InitialSystemPrompt,
		Model:        cfg.DefaultModel,
		Streaming:    cfg.Streaming,
	})
	return &App{Config: cfg, Transport: transport, Session: session}, nil
}

// Run is the process body: it returns the exit code. args are the command
// line arguments without the program name; the first one, if present, names
// the model to start with.
func Run(args []string) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	applyArgs(cfg, args)

	if _, err := logging.Setup(cfg); err != nil {
		slog.Warn("Failed to set up log file, logging is disabled", "error", err)
	}
	logConfigSource(cfg)

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize assistant", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	line := liner.NewLiner()
	defer func() {
		if err := line.Close(); err != nil {
			slog.Warn("Failed to restore terminal", "error", err)
		}
	}()
	line.SetCtrlCAborts(true)

	repl := cli.NewREPL(app.Session, line, os.Stdout)
	if err := repl.Run(ctx); err != nil {
		slog.Error("Assistant stopped with an error", "error", err)
		return 1
	}

	slog.Info("Assistant exited", "session_id", app.Session.ID(), "turns", app.Session.TurnCount())
	return 0
}

// applyArgs lets a model name on the command line override DEFAULT_MODEL.
func applyArgs(cfg *config.Config, args []string) {
	if len(args) == 0 {
		return
	}
	if name := strings.TrimSpace(args[0]); name != "" {
		cfg.DefaultModel = name
	}
}

func logConfigSource(cfg *config.Config) {
	if src := cfg.Source(); src != "" {
		slog.Info("Successfully loaded configuration from file.", "file", src)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
	slog.Info("Configuration",
		"ollama_url", cfg.OllamaURL,
		"model", cfg.DefaultModel,
		"streaming", cfg.Streaming,
		"log_level", cfg.LogLevel,
	)
}
