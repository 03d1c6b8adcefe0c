package errs

import (
	"fmt"
	"strings"
)

// Each pipeline stage reports failures with exactly one of the types below.
// Classify turns them into an AppError at the request boundary.

// InputError reports a missing or malformed conversion request.
type InputError struct {
	Reason string
	Cause  error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Reason, e.Cause)
	}
	return "invalid input: " + e.Reason
}

func (e *InputError) Unwrap() error { return e.Cause }

// FetchError reports a failure retrieving the source page. Exactly one of
// Timeout or StatusCode is set when the cause is known; neither is set for
// transport failures such as DNS errors or refused connections.
type FetchError struct {
	URL        string
	Timeout    bool
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("fetch %s: timed out: %v", e.URL, e.Cause)
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
	}
}

func (e *FetchError) Unwrap() error { return e.Cause }

// ParseError reports metadata the configured policy requires but the page
// does not provide.
type ParseError struct {
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("metadata %s: %s", e.Field, e.Reason)
}

// PublishError reports a rejection or malformed answer from the publish API.
type PublishError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *PublishError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("publish: HTTP %d: %s", e.StatusCode, msg)
	}
	return "publish: " + msg
}

func (e *PublishError) Unwrap() error { return e.Cause }

// ConfigError is returned when required configuration is missing or invalid.
type ConfigError struct {
	Missing []string
	Reason  string
}

func (e *ConfigError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("configuration incomplete (missing %s)", strings.Join(e.Missing, ", "))
	case e.Reason != "":
		return "configuration invalid: " + e.Reason
	default:
		return "configuration invalid"
	}
}
