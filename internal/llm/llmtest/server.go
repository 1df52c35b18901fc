// Package llmtest provides a fake Ollama server for tests.
package llmtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// ChatRequest is the request body as the fake server decoded it.
type ChatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Stream bool `json:"stream"`
}

// Server serves /api/tags and /api/chat with canned responses and records
// every chat request it receives.
type Server struct {
	URL string

	srv *httptest.Server

	mu           sync.Mutex
	tagsStatus   int
	tagsBody     string
	chatHandler  http.HandlerFunc
	chatRequests []ChatRequest
	contentTypes []string
}

// NewServer starts a fake server that is closed when the test ends. By
// default /api/tags lists no models and /api/chat answers 404.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		tagsStatus: http.StatusOK,
		tagsBody:   `{"models":[]}`,
	}
	s.chatHandler = Respond(http.StatusNotFound, `{"error":"model not found"}`)

	r := chi.NewRouter()
	r.Get("/api/tags", s.handleTags)
	r.Post("/api/chat", s.handleChat)

	s.srv = httptest.NewServer(r)
	s.URL = s.srv.URL
	t.Cleanup(s.srv.Close)
	return s
}

// SetTags sets the status and raw body returned by GET /api/tags.
func (s *Server) SetTags(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tagsStatus, s.tagsBody = status, body
}

// SetModels makes GET /api/tags list the given model names.
func (s *Server) SetModels(names ...string) {
	type entry struct {
		Name string `json:"name"`
	}
	models := make([]entry, len(names))
	for i, n := range names {
		models[i] = entry{Name: n}
	}
	body, _ := json.Marshal(map[string]any{"models": models})
	s.SetTags(http.StatusOK, string(body))
}

// SetChat installs the handler for POST /api/chat. The request body has
// already been recorded when h runs.
func (s *Server) SetChat(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatHandler = h
}

// ChatRequests returns every chat request received so far.
func (s *Server) ChatRequests() []ChatRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatRequest, len(s.chatRequests))
	copy(out, s.chatRequests)
	return out
}

// ContentTypes returns the Content-Type header of every chat request.
func (s *Server) ContentTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.contentTypes...)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status, body := s.tagsStatus, s.tagsBody
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.chatRequests = append(s.chatRequests, req)
	s.contentTypes = append(s.contentTypes, r.Header.Get("Content-Type"))
	h := s.chatHandler
	s.mu.Unlock()

	h(w, r)
}

// Respond returns a handler that writes status and body verbatim.
func Respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// Stream returns a handler that writes each line followed by a newline,
// flushing after every line the way a live stream arrives.
func Stream(lines ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)
		flusher, _ := w.(http.Flusher)
		for _, line := range lines {
			_, _ = w.Write([]byte(line + "\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// Reply returns a handler producing a non-streaming chat body with content.
func Reply(content string) http.HandlerFunc {
	body, _ := json.Marshal(map[string]any{
		"model":   "test-model",
		"message": map[string]string{"role": "assistant", "content": content},
		"done":    true,
	})
	return Respond(http.StatusOK, string(body))
}

// ContentLine builds one bare NDJSON streaming line carrying content.
func ContentLine(content string) string {
	body, _ := json.Marshal(map[string]any{
		"message": map[string]string{"role": "assistant", "content": content},
		"done":    false,
	})
	return string(body)
}

// SSELine is ContentLine with the "data: " prefix.
func SSELine(content string) string {
	return "data: " + ContentLine(content)
}

// Body joins lines the way a buffered stream body looks.
func Body(lines ...string) string {
	return strings.Join(lines, "\n")
}
