package service

import (
	"fmt"
	"log/slog"
	"strings"

	app_errors "ollama-assistant/internal/errors"
)

// Settings are the per-session knobs a caller may change between turns.
type Settings struct {
	SystemPrompt string
	Model        string
	Streaming    bool
}

// Settings returns a copy of the current settings.
func (s *Session) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetModel selects the model used from the next turn on.
func (s *Session) SetModel(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: model name cannot be empty", app_errors.ErrValidation)
	}
	s.mu.Lock()
	prev := s.settings.Model
	s.settings.Model = name
	s.mu.Unlock()

	slog.Info("Model changed", "session_id", s.id, "from", prev, "to", name)
	return nil
}

// CurrentModel returns the selected model name.
func (s *Session) CurrentModel() string {
	return s.Settings().Model
}

// SetStreaming chooses between streaming and single-body replies.
func (s *Session) SetStreaming(enabled bool) {
	s.mu.Lock()
	s.settings.Streaming = enabled
	s.mu.Unlock()
	slog.Info("Streaming toggled", "session_id", s.id, "streaming", enabled)
}

// IsStreaming reports whether replies are requested as a stream.
func (s *Session) IsStreaming() bool {
	return s.Settings().Streaming
}
