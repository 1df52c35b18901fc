package interfaces

import (
	"context"

	"ollama-assistant/internal/model"
)

// ChatSession is everything the interactive front end needs from a session.
// Depending on this interface instead of *service.Session keeps the REPL
// testable with a mock.
type ChatSession interface {
	Send(ctx context.Context, text string) (string, error)
	History() []model.Message
	TurnCount() int
	Clear() error

	SetModel(name string) error
	CurrentModel() string
	SetStreaming(enabled bool)
	IsStreaming() bool

	CheckConnection(ctx context.Context) bool
	ListModels(ctx context.Context) ([]string, error)
	BaseURL() string
}
