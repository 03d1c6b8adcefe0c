package model

// ConversionRequest is the JSON body accepted by the cast endpoints.
type ConversionRequest struct {
	VideoURL string `json:"videoUrl"`
}

// PageMetadata holds the Open Graph fields extracted from a page.
// ImageURL is empty when the page has no usable og:image.
type PageMetadata struct {
	Title    string
	ImageURL string
}

// HasImage reports whether an image URL was found.
func (m PageMetadata) HasImage() bool {
	return m.ImageURL != ""
}

// Embed is a URL attached to a cast and rendered as a preview card.
type Embed struct {
	URL string `json:"url"`
}

// CastPayload is the text and ordered embeds sent to the publish API.
// The first embed is always the source URL.
type CastPayload struct {
	Text   string  `json:"text"`
	Embeds []Embed `json:"embeds"`
}

// PublishResult identifies a published cast and echoes what was sent.
type PublishResult struct {
	Hash   string
	Text   string
	Embeds []Embed
}

// CastResponse is the JSON shape returned after a successful publish.
type CastResponse struct {
	Success    bool    `json:"success"`
	CastHash   string  `json:"castHash"`
	CastText   string  `json:"castText"`
	CastEmbeds []Embed `json:"castEmbeds"`
	CastURL    string  `json:"castUrl,omitempty"`
}

// PreviewResponse is the JSON shape returned by the preview endpoint.
type PreviewResponse struct {
	Success     bool    `json:"success"`
	CastText    string  `json:"castText"`
	CastEmbeds  []Embed `json:"castEmbeds"`
	ComposerURL string  `json:"composerUrl"`
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
