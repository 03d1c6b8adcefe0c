package castify

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 5 * time.Second

// ImageProber checks that an og:image can actually be loaded, so a cast is
// not published with an embed the client will fail to render.
type ImageProber struct {
	client *http.Client
}

// NewImageProber returns a prober with a 5s timeout that does not follow
// redirects and, unless allowPrivate is set, refuses private/reserved ranges.
func NewImageProber(allowPrivate bool) *ImageProber {
	return newImageProber(&http.Transport{
		DialContext:         newDialer(probeTimeout, allowPrivate).DialContext,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	})
}

func newImageProber(transport http.RoundTripper) *ImageProber {
	return &ImageProber{
		client: &http.Client{
			Timeout:   probeTimeout,
			Transport: transport,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Reachable performs a HEAD request and reports whether the image answered
// without an error status. Servers that refuse HEAD (405) get the benefit of
// the doubt.
func (p *ImageProber) Reachable(ctx context.Context, imageURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/avif,image/webp,image/*,*/*;q=0.8")

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode < 400 || resp.StatusCode == http.StatusMethodNotAllowed
}
