package errors

import "errors"

// This package defines the sentinel error kinds shared across the assistant.
// Lower layers wrap one of these (directly or through a typed error that
// implements Is) so callers can branch with errors.Is() instead of matching
// on message text.

var (
	// ErrTransport signifies that a request never produced an HTTP response:
	// connection refused, DNS failure, or a timeout.
	ErrTransport = errors.New("transport error")

	// ErrServer signifies that the server answered with a non-200 status.
	ErrServer = errors.New("server error")

	// ErrDecode signifies that a non-streaming response body was not valid JSON.
	// Malformed lines inside a streaming response are skipped, never reported.
	ErrDecode = errors.New("decode error")

	// ErrInvalidState signifies an operation that violates the turn state
	// machine, such as starting a turn while another is awaiting its reply.
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation signifies that a configuration value or outgoing request
	// failed its validation rules.
	ErrValidation = errors.New("validation failed")
)
