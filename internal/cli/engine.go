package cli

import (
	"strings"

	"github.com/Bahjat/castify/internal/castify"
	"github.com/Bahjat/castify/internal/platform/config"
)

// loadConfig reads the environment and applies a non-empty --image-policy
// flag on top of it.
func loadConfig(imagePolicy string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if imagePolicy != "" {
		cfg.ImagePolicy = strings.ToLower(strings.TrimSpace(imagePolicy))
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// newEngine builds the pipeline from cfg. Without publish the engine can only
// prepare payloads and no credentials are needed.
func newEngine(cfg config.Config, publish bool) (*castify.Engine, error) {
	image, err := castify.ParseImagePolicy(cfg.ImagePolicy)
	if err != nil {
		return nil, err
	}
	policy := castify.Policy{
		Image:        image,
		IncludeImage: cfg.ImageEmbed,
		TextPrefix:   cfg.CastTextPrefix,
	}

	var publisher castify.Publisher
	if publish {
		if err := cfg.RequirePublisher(); err != nil {
			return nil, err
		}
		neynar, err := castify.NewNeynarClient(castify.NeynarConfig{
			BaseURL:    cfg.NeynarAPIURL,
			APIKey:     cfg.NeynarAPIKey,
			SignerUUID: cfg.NeynarSignerUUID,
		})
		if err != nil {
			return nil, err
		}
		publisher = neynar
	}

	var opts []castify.Option
	if cfg.ProbeImages {
		opts = append(opts, castify.WithImageProber(castify.NewImageProber(cfg.AllowPrivateNetworks)))
	}

	fetcher := castify.NewHTTPClient(cfg.FetchTimeout, cfg.AllowPrivateNetworks)
	return castify.NewEngine(fetcher, publisher, policy, opts...), nil
}
