package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantKind    Kind
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "input error",
			err:         &InputError{Reason: "Missing video URL."},
			wantKind:    BadRequest,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing video URL.",
		},
		{
			name:        "fetch timeout",
			err:         &FetchError{URL: "https://slow.example.com", Timeout: true, Cause: context.DeadlineExceeded},
			wantKind:    GatewayTimeout,
			wantStatus:  http.StatusGatewayTimeout,
			wantMessage: msgTimeout,
		},
		{
			name:        "fetch 403",
			err:         &FetchError{URL: "https://example.com", StatusCode: http.StatusForbidden},
			wantKind:    UpstreamError,
			wantStatus:  http.StatusForbidden,
			wantMessage: msgAccessDenied,
		},
		{
			name:        "fetch 404",
			err:         &FetchError{URL: "https://example.com", StatusCode: http.StatusNotFound},
			wantKind:    UpstreamError,
			wantStatus:  http.StatusNotFound,
			wantMessage: msgNotFound,
		},
		{
			name:        "fetch 503",
			err:         &FetchError{URL: "https://example.com", StatusCode: http.StatusServiceUnavailable},
			wantKind:    UpstreamError,
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: "The site returned HTTP error 503.",
		},
		{
			name:        "fetch non-error status",
			err:         &FetchError{URL: "https://example.com", StatusCode: http.StatusNotModified},
			wantKind:    UpstreamError,
			wantStatus:  http.StatusBadGateway,
			wantMessage: "The site returned HTTP error 304.",
		},
		{
			name:        "fetch transport failure",
			err:         &FetchError{URL: "https://down.example.com", Cause: errors.New("connection refused")},
			wantKind:    UpstreamError,
			wantStatus:  http.StatusBadGateway,
			wantMessage: msgUnreachable,
		},
		{
			name:        "missing image",
			err:         &ParseError{Field: "og:image", Reason: "not present"},
			wantKind:    UnprocessableContent,
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: msgMissingImage,
		},
		{
			name:        "publish rejected with status",
			err:         &PublishError{StatusCode: http.StatusUnauthorized, Message: "invalid signer"},
			wantKind:    PublishRejected,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Publishing the cast failed: invalid signer",
		},
		{
			name:        "publish malformed response",
			err:         &PublishError{StatusCode: http.StatusOK, Message: "malformed response"},
			wantKind:    PublishRejected,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Publishing the cast failed: malformed response",
		},
		{
			name:        "publish transport failure",
			err:         &PublishError{Cause: errors.New("connection reset")},
			wantKind:    PublishRejected,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Publishing the cast failed.",
		},
		{
			name:        "config error",
			err:         &ConfigError{Missing: []string{"NEYNAR_API_KEY"}},
			wantKind:    ConfigurationError,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: msgNotConfigured,
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantKind:    InternalError,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: msgUnexpected,
		},
		{
			name:        "wrapped fetch error",
			err:         fmt.Errorf("convert: %w", &FetchError{URL: "https://example.com", StatusCode: http.StatusForbidden}),
			wantKind:    UpstreamError,
			wantStatus:  http.StatusForbidden,
			wantMessage: msgAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got == nil {
				t.Fatal("Classify returned nil")
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if got.StatusCode() != tt.wantStatus {
				t.Errorf("Status = %d, want %d", got.StatusCode(), tt.wantStatus)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("classified error does not wrap the original")
			}
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	if got := Classify(nil); got != nil {
		t.Errorf("Classify(nil) = %v, want nil", got)
	}
}

func TestClassify_PassesThroughAppError(t *testing.T) {
	orig := &AppError{Kind: BadRequest, Status: http.StatusBadRequest, Message: "Invalid JSON sent."}
	if got := Classify(orig); got != orig {
		t.Errorf("Classify returned %v, want the original AppError", got)
	}
}

func TestClassify_UpstreamMessagesAreDistinct(t *testing.T) {
	forbidden := Classify(&FetchError{StatusCode: http.StatusForbidden})
	notFound := Classify(&FetchError{StatusCode: http.StatusNotFound})
	publish := Classify(&PublishError{StatusCode: http.StatusForbidden, Message: "denied"})

	if forbidden.Message == notFound.Message {
		t.Errorf("403 and 404 share the message %q", forbidden.Message)
	}
	if !strings.Contains(forbidden.Message, "403") {
		t.Errorf("403 message %q does not mention the status", forbidden.Message)
	}
	if publish.Message == forbidden.Message {
		t.Errorf("publish and fetch denial share the message %q", publish.Message)
	}
}

func TestKindString(t *testing.T) {
	if got := UnprocessableContent.String(); got != "unprocessable_content" {
		t.Errorf("String() = %q, want %q", got, "unprocessable_content")
	}
	if got := Kind(99).String(); got != "kind(99)" {
		t.Errorf("String() = %q, want %q", got, "kind(99)")
	}
}
