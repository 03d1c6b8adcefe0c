package errs

import (
	"fmt"
	"net/http"
)

// Kind categorizes application errors for HTTP status mapping.
type Kind int

const (
	// InternalError represents an unclassified error (HTTP 500).
	InternalError Kind = iota
	// BadRequest indicates the request was malformed (HTTP 400).
	BadRequest
	// GatewayTimeout indicates the source site took too long to respond (HTTP 504).
	GatewayTimeout
	// UpstreamError indicates the source site could not be fetched or answered
	// with a non-2xx status. The response status mirrors the upstream one.
	UpstreamError
	// UnprocessableContent indicates the page lacks metadata required by the
	// configured policy (HTTP 422).
	UnprocessableContent
	// PublishRejected indicates the publish API refused or garbled the cast.
	PublishRejected
	// ConfigurationError indicates the service lacks credentials it needs.
	ConfigurationError
)

var kindNames = map[Kind]string{
	InternalError:        "internal_error",
	BadRequest:           "bad_request",
	GatewayTimeout:       "gateway_timeout",
	UpstreamError:        "upstream_error",
	UnprocessableContent: "unprocessable_content",
	PublishRejected:      "publish_rejected",
	ConfigurationError:   "configuration_error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// AppError carries a category, response status, user message, and original cause.
type AppError struct {
	Kind           Kind
	Status         int // HTTP status code sent to the caller
	UpstreamStatus int // HTTP status code returned by the source site or publish API
	Message        string
	Cause          error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status for the error, falling back to 500.
func (e *AppError) StatusCode() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}
