package castify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/Bahjat/castify/internal/model"
	"github.com/Bahjat/castify/internal/platform/errs"
)

// Publisher submits a cast payload under a pre-authorized signer.
type Publisher interface {
	Publish(ctx context.Context, payload model.CastPayload) (*model.PublishResult, error)
}

const (
	publishPath     = "/v2/farcaster/cast"
	publishTimeout  = 30 * time.Second
	maxPublishReply = 1 << 20 // 1 MB
)

// NeynarConfig holds the publish API credentials. Both APIKey and SignerUUID
// are required.
type NeynarConfig struct {
	BaseURL    string
	APIKey     string
	SignerUUID string
}

// NeynarClient publishes casts through the Neynar v2 REST API. It is built
// once at startup and shared by all requests; nothing mutates it afterwards.
type NeynarClient struct {
	client     *http.Client
	endpoint   string
	apiKey     string
	signerUUID string
}

// NewNeynarClient fails with *errs.ConfigError when a credential is missing,
// before any network call can be attempted.
func NewNeynarClient(cfg NeynarConfig) (*NeynarClient, error) {
	var missing []string
	if strings.TrimSpace(cfg.APIKey) == "" {
		missing = append(missing, "NEYNAR_API_KEY")
	}
	if strings.TrimSpace(cfg.SignerUUID) == "" {
		missing = append(missing, "NEYNAR_SIGNER_UUID")
	}
	if len(missing) > 0 {
		return nil, &errs.ConfigError{Missing: missing}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.neynar.com"
	}

	client := cleanhttp.DefaultPooledClient()
	client.Timeout = publishTimeout

	return &NeynarClient{
		client:     client,
		endpoint:   baseURL + publishPath,
		apiKey:     cfg.APIKey,
		signerUUID: cfg.SignerUUID,
	}, nil
}

type castRequest struct {
	SignerUUID string        `json:"signer_uuid"`
	Text       string        `json:"text"`
	Embeds     []model.Embed `json:"embeds,omitempty"`
}

type castResponse struct {
	Success bool `json:"success"`
	Cast    struct {
		Hash string `json:"hash"`
	} `json:"cast"`
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Publish makes a single attempt; retries, if wanted, belong to the caller.
func (c *NeynarClient) Publish(ctx context.Context, payload model.CastPayload) (*model.PublishResult, error) {
	reqBody, err := json.Marshal(castRequest{
		SignerUUID: c.signerUUID,
		Text:       payload.Text,
		Embeds:     payload.Embeds,
	})
	if err != nil {
		return nil, fmt.Errorf("encode cast: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, &errs.PublishError{Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &errs.PublishError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPublishReply))
	if err != nil {
		return nil, &errs.PublishError{StatusCode: resp.StatusCode, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errs.PublishError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data, resp.StatusCode),
		}
	}

	var out castResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &errs.PublishError{StatusCode: resp.StatusCode, Message: "malformed response", Cause: err}
	}
	if out.Cast.Hash == "" {
		return nil, &errs.PublishError{StatusCode: resp.StatusCode, Message: "malformed response: missing cast hash"}
	}

	embeds := make([]model.Embed, len(payload.Embeds))
	copy(embeds, payload.Embeds)

	return &model.PublishResult{
		Hash:   out.Cast.Hash,
		Text:   payload.Text,
		Embeds: embeds,
	}, nil
}

func errorMessage(body []byte, status int) string {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return http.StatusText(status)
}
