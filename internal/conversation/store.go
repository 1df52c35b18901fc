// Package conversation holds the ordered, append-only message log of a chat
// session.
package conversation

import (
	"sync"

	"ollama-assistant/internal/model"
)

// Store is an ordered log of role-tagged messages. Index 0 is always the
// system message installed by New or Reset; every later entry is appended.
//
// Messages normally alternate user/assistant after index 0. The one permitted
// exception is a failed turn: the user message stays in the log without an
// assistant reply, so the next turn produces two consecutive user messages.
type Store struct {
	mu       sync.RWMutex
	messages []model.Message
}

// New creates a store holding exactly one system message.
func New(systemPrompt string) *Store {
	s := &Store{}
	s.Reset(systemPrompt)
	return s
}

// AppendUser appends a user message. Empty content is not rejected here;
// filtering empty input is the caller's job.
func (s *Store) AppendUser(text string) {
	s.append(model.RoleUser, text)
}

// AppendAssistant appends an assistant message. An empty reply is legal.
func (s *Store) AppendAssistant(text string) {
	s.append(model.RoleAssistant, text)
}

func (s *Store) append(role model.Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, model.Message{Role: role, Content: content})
}

// Snapshot returns a copy of every message, system message included. Later
// mutations of the store are not visible through the returned slice.
func (s *Store) Snapshot() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// History returns a copy of every message after the system message.
func (s *Store) History() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Message, len(s.messages)-1)
	copy(out, s.messages[1:])
	return out
}

// Reset drops every message and installs a fresh system message.
func (s *Store) Reset(systemPrompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []model.Message{{Role: model.RoleSystem, Content: systemPrompt}}
}

// Len returns the number of messages, system message included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// TurnCount returns the number of completed turns. Each committed assistant
// message closes exactly one turn, so a failed turn (user message with no
// reply) is never counted.
func (s *Store) TurnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, m := range s.messages {
		if m.Role == model.RoleAssistant {
			n++
		}
	}
	return n
}
