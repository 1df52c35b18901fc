package llm

import (
	"context"
	"errors"
	"fmt"
	"net"

	app_errors "ollama-assistant/internal/errors"
)

// TransportError reports a request that never produced an HTTP response, or
// whose body could not be read to the end. Timeouts land here too.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v (is Ollama running? try: ollama serve)", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == app_errors.ErrTransport }

// Timeout reports whether the request was cut off by its deadline.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ServerError reports a non-200 status. Body holds the raw response text.
type ServerError struct {
	StatusCode int
	Body       string
	Model      string
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("ollama returned status %d: %s", e.StatusCode, e.Body)
	if e.Model != "" {
		msg += fmt.Sprintf(" (is model %q installed? try: ollama pull %s)", e.Model, e.Model)
	}
	return msg
}

func (e *ServerError) Is(target error) bool { return target == app_errors.ErrServer }
