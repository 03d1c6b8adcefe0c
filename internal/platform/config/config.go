package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Bahjat/castify/internal/platform/errs"
)

const (
	envAPIKey     = "NEYNAR_API_KEY"
	envSignerUUID = "NEYNAR_SIGNER_UUID"

	minFetchTimeout = 5 * time.Second
	maxFetchTimeout = 15 * time.Second
)

var (
	errInvalidPort        = errors.New("config: invalid PORT number")
	errInvalidLogFormat   = errors.New("config: LOG_FORMAT must be json or text")
	errInvalidImagePolicy = errors.New("config: IMAGE_POLICY must be required or optional")
	errFetchTimeoutRange  = errors.New("config: FETCH_TIMEOUT must be between 5s and 15s")
	errInvalidAPIURL      = errors.New("config: NEYNAR_API_URL must be an absolute http(s) URL")
	errInvalidManifestURL = errors.New("config: MANIFEST_URL must be an absolute http(s) URL")
	errInvalidBool        = errors.New("config: invalid boolean")
	errInvalidDuration    = errors.New("config: invalid duration")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	NeynarAPIKey     string
	NeynarSignerUUID string
	NeynarAPIURL     string

	ImagePolicy    string
	ImageEmbed     bool
	CastTextPrefix string
	FetchTimeout   time.Duration
	ProbeImages    bool

	AllowPrivateNetworks bool
	ManifestURL          string
	CORSAllowOrigin      string
}

// Load reads configuration from environment variables with sensible defaults.
// Publisher credentials are not checked here; call RequirePublisher before
// constructing anything that publishes.
func Load() (Config, error) {
	env := &envReader{}
	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "json")),

		NeynarAPIKey:     strings.TrimSpace(os.Getenv(envAPIKey)),
		NeynarSignerUUID: strings.TrimSpace(os.Getenv(envSignerUUID)),
		NeynarAPIURL:     strings.TrimRight(getEnv("NEYNAR_API_URL", "https://api.neynar.com"), "/"),

		ImagePolicy:    strings.ToLower(getEnv("IMAGE_POLICY", "required")),
		ImageEmbed:     env.asBool("IMAGE_EMBED", true),
		CastTextPrefix: strings.TrimSpace(os.Getenv("CAST_TEXT_PREFIX")),
		FetchTimeout:   env.asDuration("FETCH_TIMEOUT", 10*time.Second),
		ProbeImages:    env.asBool("PROBE_IMAGES", false),

		AllowPrivateNetworks: env.asBool("ALLOW_PRIVATE_NETWORKS", false),
		ManifestURL:          strings.TrimSpace(os.Getenv("MANIFEST_URL")),
		CORSAllowOrigin:      getEnv("CORS_ALLOW_ORIGIN", "*"),
	}

	if err := errors.Join(env.errs...); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks every field that does not depend on publisher credentials.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("%w: got %q", errInvalidLogFormat, c.LogFormat)
	}

	if c.ImagePolicy != "required" && c.ImagePolicy != "optional" {
		return fmt.Errorf("%w: got %q", errInvalidImagePolicy, c.ImagePolicy)
	}

	if c.FetchTimeout < minFetchTimeout || c.FetchTimeout > maxFetchTimeout {
		return fmt.Errorf("%w: got %s", errFetchTimeoutRange, c.FetchTimeout)
	}

	if !isHTTPURL(c.NeynarAPIURL) {
		return fmt.Errorf("%w: %q", errInvalidAPIURL, c.NeynarAPIURL)
	}

	if c.ManifestURL != "" && !isHTTPURL(c.ManifestURL) {
		return fmt.Errorf("%w: %q", errInvalidManifestURL, c.ManifestURL)
	}

	return nil
}

// RequirePublisher reports a ConfigError naming every missing credential.
func (c Config) RequirePublisher() error {
	var missing []string
	if c.NeynarAPIKey == "" {
		missing = append(missing, envAPIKey)
	}
	if c.NeynarSignerUUID == "" {
		missing = append(missing, envSignerUUID)
	}
	if len(missing) > 0 {
		return &errs.ConfigError{Missing: missing}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// envReader parses typed variables and keeps every failure so Load can
// report them together instead of silently using the default.
type envReader struct {
	errs []error
}

func (r *envReader) asBool(key string, fallback bool) bool {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%w: %s=%q", errInvalidBool, key, s))
		return fallback
	}
	return v
}

// asDuration accepts Go durations ("10s") and bare seconds ("10").
func (r *envReader) asDuration(key string, fallback time.Duration) time.Duration {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return fallback
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second
	}
	r.errs = append(r.errs, fmt.Errorf("%w: %s=%q", errInvalidDuration, key, s))
	return fallback
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
