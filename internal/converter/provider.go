package converter

import (
	"context"

	"github.com/Bahjat/castify/internal/model"
)

// CastProvider defines the contract for any link-to-cast pipeline.
type CastProvider interface {
	// Convert publishes a cast for targetURL.
	Convert(ctx context.Context, targetURL string) (*model.PublishResult, error)
	// Prepare builds the cast payload without publishing it.
	Prepare(ctx context.Context, targetURL string) (model.CastPayload, error)
}
