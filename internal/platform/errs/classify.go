package errs

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	msgTimeout       = "The site took too long to respond. Try again or use a different link."
	msgUnreachable   = "The provided URL could not be reached. Check the address."
	msgAccessDenied  = "Access denied (403). The site blocked the request."
	msgNotFound      = "URL not found (404)."
	msgMissingImage  = "Image blocked or not found. Try a different link."
	msgMissingField  = "The page is missing required metadata."
	msgPublishFailed = "Publishing the cast failed"
	msgNotConfigured = "The service is not configured to publish casts."
	msgUnexpected    = "An unexpected error occurred."
)

// Classify maps any pipeline error to exactly one AppError. The checks run in
// a fixed order and the first match wins. A nil error yields nil.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return &AppError{
			Kind:    BadRequest,
			Status:  http.StatusBadRequest,
			Message: inputErr.Reason,
			Cause:   err,
		}
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return classifyFetch(fetchErr, err)
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		msg := msgMissingField
		if parseErr.Field == "og:image" {
			msg = msgMissingImage
		}
		return &AppError{
			Kind:    UnprocessableContent,
			Status:  http.StatusUnprocessableEntity,
			Message: msg,
			Cause:   err,
		}
	}

	var publishErr *PublishError
	if errors.As(err, &publishErr) {
		return classifyPublish(publishErr, err)
	}

	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return &AppError{
			Kind:    ConfigurationError,
			Status:  http.StatusInternalServerError,
			Message: msgNotConfigured,
			Cause:   err,
		}
	}

	return &AppError{
		Kind:    InternalError,
		Status:  http.StatusInternalServerError,
		Message: msgUnexpected,
		Cause:   err,
	}
}

func classifyFetch(fetchErr *FetchError, err error) *AppError {
	if fetchErr.Timeout {
		return &AppError{
			Kind:    GatewayTimeout,
			Status:  http.StatusGatewayTimeout,
			Message: msgTimeout,
			Cause:   err,
		}
	}

	if fetchErr.StatusCode == 0 {
		return &AppError{
			Kind:    UpstreamError,
			Status:  http.StatusBadGateway,
			Message: msgUnreachable,
			Cause:   err,
		}
	}

	var msg string
	switch fetchErr.StatusCode {
	case http.StatusForbidden:
		msg = msgAccessDenied
	case http.StatusNotFound:
		msg = msgNotFound
	default:
		msg = fmt.Sprintf("The site returned HTTP error %d.", fetchErr.StatusCode)
	}

	return &AppError{
		Kind:           UpstreamError,
		Status:         mirrorStatus(fetchErr.StatusCode, http.StatusBadGateway),
		UpstreamStatus: fetchErr.StatusCode,
		Message:        msg,
		Cause:          err,
	}
}

func classifyPublish(publishErr *PublishError, err error) *AppError {
	msg := msgPublishFailed + "."
	if publishErr.Message != "" {
		msg = fmt.Sprintf("%s: %s", msgPublishFailed, publishErr.Message)
	}
	return &AppError{
		Kind:           PublishRejected,
		Status:         mirrorStatus(publishErr.StatusCode, http.StatusInternalServerError),
		UpstreamStatus: publishErr.StatusCode,
		Message:        msg,
		Cause:          err,
	}
}

// mirrorStatus passes through 4xx and 5xx codes; anything else is replaced by
// fallback so a failure is never reported with a success status.
func mirrorStatus(upstream, fallback int) int {
	if upstream >= 400 && upstream <= 599 {
		return upstream
	}
	return fallback
}
