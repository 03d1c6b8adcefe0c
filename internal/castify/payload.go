package castify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Bahjat/castify/internal/model"
)

const (
	hashtag = "#Castify"

	castBaseURL     = "https://warpcast.com/~/casts/"
	composerBaseURL = "https://warpcast.com/~/compose"
)

// ImagePolicy decides what happens when a page has no usable og:image.
type ImagePolicy string

const (
	// ImageRequired rejects the conversion before anything is published.
	ImageRequired ImagePolicy = "required"
	// ImageOptional publishes the cast with the source URL as its only embed.
	ImageOptional ImagePolicy = "optional"
)

// ParseImagePolicy accepts "required" or "optional", case-insensitively.
func ParseImagePolicy(s string) (ImagePolicy, error) {
	switch p := ImagePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ImageRequired, ImageOptional:
		return p, nil
	default:
		return "", fmt.Errorf("unknown image policy %q (want %q or %q)", s, ImageRequired, ImageOptional)
	}
}

// Policy gathers the knobs that shape a conversion. The zero value is not
// usable; start from DefaultPolicy.
type Policy struct {
	Image        ImagePolicy
	IncludeImage bool   // append the resolved image as a second embed
	TextPrefix   string // cosmetic, e.g. an emoji
}

// DefaultPolicy is strict about images and embeds them when present.
func DefaultPolicy() Policy {
	return Policy{Image: ImageRequired, IncludeImage: true}
}

// BuildPayload assembles the cast text and embeds. The first embed is always
// sourceURL exactly as submitted so the client renders a preview of the link
// the user gave.
func BuildPayload(meta model.PageMetadata, sourceURL string, policy Policy) model.CastPayload {
	title := meta.Title
	if policy.TextPrefix != "" {
		title = policy.TextPrefix + " " + title
	}

	embeds := []model.Embed{{URL: sourceURL}}
	if policy.IncludeImage && meta.HasImage() {
		embeds = append(embeds, model.Embed{URL: meta.ImageURL})
	}

	return model.CastPayload{
		Text:   title + "\n\n" + sourceURL + "\n\n" + hashtag,
		Embeds: embeds,
	}
}

// CastURL links to a published cast on the Warpcast web client.
func CastURL(hash string) string {
	if hash == "" {
		return ""
	}
	return castBaseURL + url.PathEscape(hash)
}

// ComposerURL opens the Warpcast composer prefilled with the payload, for
// clients that prefer to post from the user's own account.
func ComposerURL(payload model.CastPayload) string {
	var b strings.Builder
	b.WriteString(composerBaseURL)
	b.WriteString("?text=")
	b.WriteString(url.QueryEscape(payload.Text))
	for _, e := range payload.Embeds {
		b.WriteString("&embeds[]=")
		b.WriteString(url.QueryEscape(e.URL))
	}
	return b.String()
}
