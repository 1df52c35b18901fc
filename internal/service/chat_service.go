package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"ollama-assistant/internal/conversation"
	app_errors "ollama-assistant/internal/errors"
	"ollama-assistant/internal/llm"
	"ollama-assistant/internal/model"
)

// TurnState is where the session is in its single-turn cycle. A turn moves
// Idle -> AwaitingResponse and back to Idle once the reply is committed or
// the failure has been returned.
type TurnState int32

const (
	TurnIdle TurnState = iota
	TurnAwaitingResponse
)

func (s TurnState) String() string {
	switch s {
	case TurnIdle:
		return "idle"
	case TurnAwaitingResponse:
		return "awaiting_response"
	}
	return fmt.Sprintf("TurnState(%d)", int32(s))
}

// Session is one conversation with the server: the message log, the selected
// model and streaming flag, and the transport used to reach the server.
// At most one turn is in flight at a time.
type Session struct {
	id        string
	transport llm.Transport
	store     *conversation.Store

	mu       sync.RWMutex
	settings Settings

	state atomic.Int32
}

// NewSession creates a session whose conversation holds only the system prompt.
func NewSession(transport llm.Transport, settings Settings) *Session {
	s := &Session{
		id:        uuid.NewString(),
		transport: transport,
		store:     conversation.New(settings.SystemPrompt),
		settings:  settings,
	}
	slog.Info("Session created", "session_id", s.id, "model", settings.Model, "streaming", settings.Streaming)
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// State reports whether a turn is currently awaiting its reply.
func (s *Session) State() TurnState { return TurnState(s.state.Load()) }

// Send runs one turn: it appends text as a user message, sends the whole
// conversation, and appends the reply as an assistant message.
//
// On a transport or server failure the user message stays in the log and no
// assistant message is added, so the next turn follows two user messages in
// a row. Empty input, or a call made while another turn is awaiting its
// reply, fails with ErrInvalidState and leaves the log untouched.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: message is empty", app_errors.ErrInvalidState)
	}
	if !s.state.CompareAndSwap(int32(TurnIdle), int32(TurnAwaitingResponse)) {
		return "", fmt.Errorf("%w: a turn is already awaiting a response", app_errors.ErrInvalidState)
	}
	defer s.state.Store(int32(TurnIdle))

	settings := s.Settings()
	s.store.AppendUser(text)
	req := llm.NewChatRequest(settings.Model, s.store.Snapshot(), settings.Streaming)

	slog.Debug("Sending turn",
		"session_id", s.id,
		"model", settings.Model,
		"stream", settings.Streaming,
		"messages", len(req.Messages),
	)
	start := time.Now()
	reply, err := s.transport.Chat(ctx, req)
	if err != nil {
		slog.Error("Turn failed", "session_id", s.id, "model", settings.Model, "error", err)
		return "", err
	}

	s.store.AppendAssistant(reply)
	if reply == "" {
		slog.Warn("Server returned an empty reply", "session_id", s.id, "model", settings.Model)
	}
	slog.Info("Turn committed",
		"session_id", s.id,
		"turns", s.store.TurnCount(),
		"reply_bytes", len(reply),
		"elapsed", time.Since(start),
	)
	return reply, nil
}

// History returns the conversation without the system message.
func (s *Session) History() []model.Message {
	return s.store.History()
}

// TurnCount returns the number of completed turns.
func (s *Session) TurnCount() int {
	return s.store.TurnCount()
}

// Clear resets the conversation to the initial system prompt. It fails with
// ErrInvalidState while a turn is awaiting its reply. The session holds the
// turn for the duration of the reset, so a concurrent Send is rejected rather
// than interleaved with it.
func (s *Session) Clear() error {
	if !s.state.CompareAndSwap(int32(TurnIdle), int32(TurnAwaitingResponse)) {
		return fmt.Errorf("%w: cannot clear while a turn is awaiting a response", app_errors.ErrInvalidState)
	}
	defer s.state.Store(int32(TurnIdle))

	s.store.Reset(s.Settings().SystemPrompt)
	slog.Info("Conversation cleared", "session_id", s.id)
	return nil
}
