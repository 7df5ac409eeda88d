package billomat

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrNotInitialized     = errors.New("configuration not initialized")
	ErrInvalidFilter      = errors.New("invalid filter")
	ErrMissingRootElement = errors.New("missing root element")
	ErrConfigRequired     = errors.New("config is required")
)

// ConfigurationError reports a missing or invalid configuration value. It is
// returned once, from the first operation that initializes the client.
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return e.Field + " not configured"
	}

	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// DecodeError reports a response body that could not be mapped onto the
// target type, either because a value is malformed or, in strict mode,
// because the field is unknown.
type DecodeError struct {
	Resource string
	Field    string
	Value    string
	Err      error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	var builder strings.Builder

	builder.WriteString("decoding")

	if e.Resource != "" {
		builder.WriteString(" " + e.Resource)
	}

	if e.Field != "" {
		builder.WriteString(" field " + e.Field)
	}

	if e.Value != "" {
		builder.WriteString(fmt.Sprintf(" (value %s)", e.Value))
	}

	if e.Err != nil {
		builder.WriteString(": " + e.Err.Error())
	}

	return builder.String()
}

// Unwrap returns the underlying parser error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TransportError is returned for every non-2xx response.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Messages   []string
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, "; ")
	}

	return msg
}

// NetworkError wraps connection level failures such as timeouts, refused
// connections or DNS errors. No response was received.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying network error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// InvalidStateError is returned before any request is made when an entity is
// not in a state that allows the operation, e.g. updating an entity without id.
type InvalidStateError struct {
	Resource string
	Reason   string
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.Reason)
}

// IsNotFound reports whether err is a transport error with status 404.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsStatus reports whether err is a transport error with the given status.
func IsStatus(err error, status int) bool {
	transportErr := &TransportError{}
	if errors.As(err, &transportErr) {
		return transportErr.StatusCode == status
	}

	return false
}

// IsNetworkError reports whether err is a connection level failure.
func IsNetworkError(err error) bool {
	networkErr := &NetworkError{}

	return errors.As(err, &networkErr)
}

// IsTemporary reports whether err is worth retrying by the caller: network
// failures, 429 and 5xx responses.
func IsTemporary(err error) bool {
	if IsNetworkError(err) {
		return true
	}

	transportErr := &TransportError{}
	if errors.As(err, &transportErr) {
		return transportErr.StatusCode == http.StatusTooManyRequests || transportErr.StatusCode >= http.StatusInternalServerError
	}

	return false
}
