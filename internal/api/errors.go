package api

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrorKind categorizes the failure modes of a request against the Architect
// server. Commands use the kind to pick a more specific message where it
// matters (server status distinguishes "not running" from everything else);
// all kinds otherwise surface identically as a single error line.
type ErrorKind int

const (
	// ErrKindTransport indicates an unclassified transport failure.
	ErrKindTransport ErrorKind = iota
	// ErrKindConnection indicates the server could not be reached
	// (connection refused, reset, unreachable host).
	ErrKindConnection
	// ErrKindHTTP indicates the server answered with an error status code.
	ErrKindHTTP
	// ErrKindInvalidResponse indicates the server answered successfully but
	// the body could not be decoded into the expected shape.
	ErrKindInvalidResponse
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindConnection:
		return "connection error"
	case ErrKindHTTP:
		return "server error"
	case ErrKindInvalidResponse:
		return "invalid response"
	default:
		return "request error"
	}
}

// Error is the single error type returned by the client. It carries a
// human-readable message ready for terminal display plus the classification
// and underlying cause for callers that need them.
type Error struct {
	// Kind categorizes the failure.
	Kind ErrorKind
	// StatusCode is the HTTP status for ErrKindHTTP errors, zero otherwise.
	StatusCode int
	// Message is the human-readable description shown to the user.
	Message string
	// Reason is the underlying error, if any.
	Reason error
}

// Error returns the human-readable message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to match on the error kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// classifyTransportError converts a failure from http.Client.Do into an
// *Error with an actionable message. Connection-level failures get a message
// telling the user how to reach the right server; everything else becomes a
// generic transport error carrying the underlying detail.
func classifyTransportError(err error, baseURL string) *Error {
	if isConnectionError(err) {
		return &Error{
			Kind: ErrKindConnection,
			Message: fmt.Sprintf(
				"Cannot connect to the Architect server at %s. Make sure the server is running, or point the CLI at it with --server or %s.",
				baseURL, ServerURLEnvHint),
			Reason: err,
		}
	}

	if isTimeoutError(err) {
		return &Error{
			Kind:    ErrKindTransport,
			Message: fmt.Sprintf("Request to %s timed out: %v", baseURL, err),
			Reason:  err,
		}
	}

	return &Error{
		Kind:    ErrKindTransport,
		Message: fmt.Sprintf("Request failed: %v", err),
		Reason:  err,
	}
}

// ServerURLEnvHint names the environment variable mentioned in connection
// error messages. Kept here so the message stays self-contained without
// importing the config package.
const ServerURLEnvHint = "ARCHITECT_SERVER_URL"

// isConnectionError checks whether the error indicates the server could not
// be reached at all.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	errStr := err.Error()
	connectionKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"no such host",
	}
	for _, keyword := range connectionKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// isTimeoutError checks if the error is a timeout.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}
