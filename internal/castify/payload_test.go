package castify

import (
	"net/url"
	"strings"
	"testing"

	"github.com/Bahjat/castify/internal/model"
)

func TestBuildPayload_SoftPolicyNoImage(t *testing.T) {
	meta := model.PageMetadata{Title: "Cool Clip"}
	policy := Policy{Image: ImageOptional, IncludeImage: true}

	got := BuildPayload(meta, "https://example.com/video", policy)

	wantText := "Cool Clip\n\nhttps://example.com/video\n\n#Castify"
	if got.Text != wantText {
		t.Errorf("Text = %q, want %q", got.Text, wantText)
	}
	if len(got.Embeds) != 1 || got.Embeds[0].URL != "https://example.com/video" {
		t.Errorf("Embeds = %+v, want only the source URL", got.Embeds)
	}
}

func TestBuildPayload_Embeds(t *testing.T) {
	source := "https://Example.com/watch?v=1&t=30#frag"
	meta := model.PageMetadata{Title: "Clip", ImageURL: "https://example.com/cover.png"}

	tests := []struct {
		name       string
		include    bool
		wantEmbeds []string
	}{
		{name: "image included", include: true, wantEmbeds: []string{source, meta.ImageURL}},
		{name: "image excluded", include: false, wantEmbeds: []string{source}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := DefaultPolicy()
			policy.IncludeImage = tt.include

			got := BuildPayload(meta, source, policy)
			if len(got.Embeds) != len(tt.wantEmbeds) {
				t.Fatalf("Embeds = %+v, want %v", got.Embeds, tt.wantEmbeds)
			}
			for i, want := range tt.wantEmbeds {
				if got.Embeds[i].URL != want {
					t.Errorf("Embeds[%d] = %q, want %q", i, got.Embeds[i].URL, want)
				}
			}
		})
	}
}

func TestBuildPayload_Prefix(t *testing.T) {
	policy := DefaultPolicy()
	policy.TextPrefix = "🎬"

	got := BuildPayload(model.PageMetadata{Title: "Clip"}, "https://example.com/v", policy)
	if !strings.HasPrefix(got.Text, "🎬 Clip\n\n") {
		t.Errorf("Text = %q, want emoji prefix before the title", got.Text)
	}
}

func TestParseImagePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ImagePolicy
		wantErr bool
	}{
		{in: "required", want: ImageRequired},
		{in: " Optional ", want: ImageOptional},
		{in: "sometimes", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseImagePolicy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseImagePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseImagePolicy(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCastURL(t *testing.T) {
	if got := CastURL("0xabc"); got != "https://warpcast.com/~/casts/0xabc" {
		t.Errorf("CastURL = %q", got)
	}
	if got := CastURL(""); got != "" {
		t.Errorf("CastURL(\"\") = %q, want empty", got)
	}
}

func TestComposerURL(t *testing.T) {
	payload := model.CastPayload{
		Text:   "Clip\n\nhttps://example.com/v?a=1\n\n#Castify",
		Embeds: []model.Embed{{URL: "https://example.com/v?a=1"}, {URL: "https://example.com/c.png"}},
	}

	raw := ComposerURL(payload)
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("composer URL does not parse: %v", err)
	}
	q := u.Query()
	if q.Get("text") != payload.Text {
		t.Errorf("text = %q, want %q", q.Get("text"), payload.Text)
	}
	embeds := q["embeds[]"]
	if len(embeds) != 2 || embeds[0] != payload.Embeds[0].URL || embeds[1] != payload.Embeds[1].URL {
		t.Errorf("embeds[] = %v", embeds)
	}
	if strings.Contains(raw, "signer") {
		t.Errorf("composer URL leaks signer: %q", raw)
	}
}
