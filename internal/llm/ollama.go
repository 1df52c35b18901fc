package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ollama-assistant/internal/validation"
)

const (
	DefaultBaseURL = "http://localhost:11434"

	tagsPath = "/api/tags"
	chatPath = "/api/chat"

	// maxErrorBodyBytes caps how much of a non-200 body is kept in a ServerError.
	maxErrorBodyBytes = 64 << 10
)

// Per-request deadlines. Local inference is slow, so chat gets a full minute.
// They are variables only so tests in this package can shorten them.
var (
	connectivityTimeout = 5 * time.Second
	listModelsTimeout   = 10 * time.Second
	chatTimeout         = 60 * time.Second
)

// Transport talks to an Ollama-compatible server.
//
// An implementation owns a single HTTP client and is not meant to serve two
// Chat calls at once; callers serialize turns.
type Transport interface {
	// CheckConnection reports whether the server answers GET /api/tags with 200.
	CheckConnection(ctx context.Context) bool
	// ListModels returns installed model names in server order.
	ListModels(ctx context.Context) ([]string, error)
	// Chat sends the request and returns the complete assistant reply.
	Chat(ctx context.Context, req *ChatRequest) (string, error)
	// BaseURL returns the server address requests are sent to.
	BaseURL() string
}

type ollamaTransport struct {
	client *http.Client
	url    string
}

// NewOllamaTransport returns a Transport for the server at url. An empty url
// means DefaultBaseURL.
func NewOllamaTransport(url string) Transport {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		url = DefaultBaseURL
	}
	return &ollamaTransport{
		client: &http.Client{},
		url:    url,
	}
}

func (p *ollamaTransport) BaseURL() string { return p.url }

func (p *ollamaTransport) CheckConnection(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, connectivityTimeout)
	defer cancel()

	resp, err := p.get(ctx, "check connection", tagsPath)
	if err != nil {
		slog.Debug("Ollama connectivity check failed", "url", p.url, "error", err)
		return false
	}
	defer closeBody(resp)
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		slog.Debug("Ollama connectivity check got non-200 status", "url", p.url, "status", resp.StatusCode)
		return false
	}
	return true
}

func (p *ollamaTransport) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, listModelsTimeout)
	defer cancel()

	endpoint := p.url + tagsPath
	resp, err := p.get(ctx, "list models", tagsPath)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, newServerError(resp, "")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "list models", URL: endpoint, Err: err}
	}
	return decodeModelNames(body), nil
}

func (p *ollamaTransport) Chat(ctx context.Context, req *ChatRequest) (string, error) {
	if err := validation.Struct(req); err != nil {
		return "", err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("could not marshal chat request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	endpoint := p.url + chatPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Op: "chat", URL: endpoint, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &TransportError{Op: "chat", URL: endpoint, Err: err}
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return "", newServerError(resp, req.Model)
	}

	var reply string
	if req.Stream {
		reply, err = DecodeStream(resp.Body)
		if err != nil {
			return "", &TransportError{Op: "chat", URL: endpoint, Err: err}
		}
	} else {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", &TransportError{Op: "chat", URL: endpoint, Err: err}
		}
		if reply, err = DecodeMessage(raw); err != nil {
			return "", err
		}
	}

	slog.Debug("Chat response decoded",
		"model", req.Model,
		"stream", req.Stream,
		"messages", len(req.Messages),
		"reply_bytes", len(reply),
		"elapsed", time.Since(start),
	)
	return reply, nil
}

// get issues a GET against path. Every failure is a *TransportError.
func (p *ollamaTransport) get(ctx context.Context, op, path string) (*http.Response, error) {
	endpoint := p.url + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Op: op, URL: endpoint, Err: err}
	}
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: op, URL: endpoint, Err: err}
	}
	return resp, nil
}

func newServerError(resp *http.Response, modelName string) *ServerError {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		slog.Warn("Could not read error response body", "status", resp.StatusCode, "error", err)
	}
	return &ServerError{StatusCode: resp.StatusCode, Body: string(raw), Model: modelName}
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		slog.Warn("Failed to close response body", "error", err)
	}
}
