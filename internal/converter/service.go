package converter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Bahjat/castify/internal/model"
	"github.com/Bahjat/castify/internal/platform/errs"
	"github.com/Bahjat/castify/internal/platform/metrics"
	"github.com/Bahjat/castify/internal/platform/requestid"
)

const outcomeSuccess = "success"

// Service orchestrates a CastProvider, classifies its failures and logs results.
type Service struct {
	provider CastProvider
	logger   *slog.Logger
}

// NewService creates a Service backed by the given provider.
func NewService(provider CastProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Generate publishes a cast for targetURL. Failures are always returned as
// *errs.AppError.
func (s *Service) Generate(ctx context.Context, targetURL string) (*model.PublishResult, error) {
	logger := s.logger.With("url", targetURL, requestid.Attr(ctx))

	result, err := s.provider.Convert(ctx, targetURL)
	if err != nil {
		return nil, s.fail(ctx, logger, "cast generation failed", err)
	}

	metrics.Conversions.WithLabelValues(outcomeSuccess).Inc()
	logger.Info("cast published",
		"cast_hash", result.Hash,
		"embeds", len(result.Embeds),
	)
	return result, nil
}

// Preview builds the payload Generate would publish, without publishing.
func (s *Service) Preview(ctx context.Context, targetURL string) (model.CastPayload, error) {
	logger := s.logger.With("url", targetURL, requestid.Attr(ctx))

	payload, err := s.provider.Prepare(ctx, targetURL)
	if err != nil {
		return model.CastPayload{}, s.fail(ctx, logger, "cast preview failed", err)
	}

	logger.Info("cast previewed", "embeds", len(payload.Embeds))
	return payload, nil
}

func (s *Service) fail(ctx context.Context, logger *slog.Logger, msg string, err error) *errs.AppError {
	appErr := errs.Classify(err)
	if appErr.Kind == errs.InternalError && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		appErr = &errs.AppError{
			Kind:    errs.GatewayTimeout,
			Status:  http.StatusGatewayTimeout,
			Message: "The request took too long to complete. Try again.",
			Cause:   err,
		}
	}

	metrics.Conversions.WithLabelValues(appErr.Kind.String()).Inc()

	attrs := []any{"error", err, "kind", appErr.Kind.String(), "status", appErr.StatusCode()}
	if appErr.UpstreamStatus != 0 {
		attrs = append(attrs, "target_status", appErr.UpstreamStatus)
	}
	if appErr.StatusCode() >= 500 {
		logger.Error(msg, attrs...)
	} else {
		logger.Warn(msg, attrs...)
	}
	return appErr
}
