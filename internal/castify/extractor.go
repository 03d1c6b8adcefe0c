package castify

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Bahjat/castify/internal/model"
)

// DefaultTitle is used when a page has no og:title.
const DefaultTitle = "Watch this video!"

// Extract reads Open Graph metadata from a fully fetched HTML document. It
// never fails: malformed or empty markup yields the default title and no
// image. Relative og:image values are resolved against source.
func Extract(page []byte, source *url.URL) model.PageMetadata {
	meta := model.PageMetadata{Title: DefaultTitle}

	// html.Parse only reports reader errors, and an in-memory page has none.
	root, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return meta
	}
	doc := goquery.NewDocumentFromNode(root)

	if title := ogContent(doc, "og:title"); title != "" {
		meta.Title = title
	}
	if image := ogContent(doc, "og:image"); image != "" {
		meta.ImageURL = resolveImageURL(image, source)
	}

	return meta
}

// ogContent returns the trimmed content of the first <meta property=...> tag.
func ogContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// resolveImageURL turns an og:image value into an absolute http(s) URL.
// "/img.png" resolves against the source origin, "//cdn/img.png" takes the
// source scheme. Values that cannot become an http(s) URL (data:, javascript:)
// resolve to "".
func resolveImageURL(raw string, source *url.URL) string {
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	resolved := ref
	if source != nil {
		resolved = source.ResolveReference(ref)
	}

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if resolved.Host == "" {
		return ""
	}
	return resolved.String()
}
