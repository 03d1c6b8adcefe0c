package castify

import (
	"context"
	"net/url"
	"time"

	"github.com/Bahjat/castify/internal/model"
	"github.com/Bahjat/castify/internal/platform/errs"
	"github.com/Bahjat/castify/internal/platform/metrics"
)

// imageProber defines how the engine confirms an og:image is loadable.
type imageProber interface {
	Reachable(ctx context.Context, imageURL string) bool
}

// Engine runs fetch, extract, build and publish for one URL at a time. It
// holds no per-request state and is safe for concurrent use.
type Engine struct {
	fetcher   Fetcher
	publisher Publisher
	prober    imageProber
	policy    Policy
}

// Option customizes an Engine.
type Option func(*Engine)

// WithImageProber makes the engine HEAD-check images before embedding them.
func WithImageProber(p imageProber) Option {
	return func(e *Engine) { e.prober = p }
}

// NewEngine returns an Engine. publisher may be nil for an engine that only
// prepares payloads; Convert then fails with a ConfigError.
func NewEngine(fetcher Fetcher, publisher Publisher, policy Policy, opts ...Option) *Engine {
	e := &Engine{
		fetcher:   fetcher,
		publisher: publisher,
		policy:    policy,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the policy the engine was built with.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Convert turns a URL into a published cast. Either a full result or an error
// is returned, never both.
func (e *Engine) Convert(ctx context.Context, targetURL string) (*model.PublishResult, error) {
	if e.publisher == nil {
		return nil, &errs.ConfigError{Reason: "no publisher configured"}
	}

	payload, err := e.Prepare(ctx, targetURL)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := e.publisher.Publish(ctx, payload)
	metrics.ObserveStage("publish", start)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Prepare runs every stage except publishing and returns the payload that
// Convert would send.
func (e *Engine) Prepare(ctx context.Context, targetURL string) (model.CastPayload, error) {
	source, err := validateURL(targetURL)
	if err != nil {
		return model.CastPayload{}, err
	}

	start := time.Now()
	page, err := e.fetcher.Fetch(ctx, targetURL)
	metrics.ObserveStage("fetch", start)
	if err != nil {
		return model.CastPayload{}, err
	}

	start = time.Now()
	meta := Extract(page, source)
	metrics.ObserveStage("extract", start)

	if meta.HasImage() && e.prober != nil && !e.prober.Reachable(ctx, meta.ImageURL) {
		meta.ImageURL = ""
	}

	if !meta.HasImage() && e.policy.Image != ImageOptional {
		return model.CastPayload{}, &errs.ParseError{Field: "og:image", Reason: "missing or unreachable"}
	}

	return BuildPayload(meta, targetURL, e.policy), nil
}

func validateURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, &errs.InputError{Reason: "Missing video URL."}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, &errs.InputError{
			Reason: "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com).",
			Cause:  err,
		}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, &errs.InputError{
			Reason: "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com).",
		}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &errs.InputError{Reason: "Only http and https URLs are supported."}
	}
	return parsed, nil
}
