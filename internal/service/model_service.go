package service

import (
	"context"
	"log/slog"
)

// CheckConnection reports whether the server is reachable. It never fails;
// every problem reads as false.
func (s *Session) CheckConnection(ctx context.Context) bool {
	ok := s.transport.CheckConnection(ctx)
	slog.Debug("Connection checked", "session_id", s.id, "url", s.transport.BaseURL(), "ok", ok)
	return ok
}

// ListModels returns the models installed on the server, in server order.
func (s *Session) ListModels(ctx context.Context) ([]string, error) {
	models, err := s.transport.ListModels(ctx)
	if err != nil {
		slog.Warn("Could not list models", "session_id", s.id, "error", err)
		return nil, err
	}
	return models, nil
}

// BaseURL is the server address the session talks to.
func (s *Session) BaseURL() string {
	return s.transport.BaseURL()
}
