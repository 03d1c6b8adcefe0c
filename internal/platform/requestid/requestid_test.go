package requestid

import (
	"context"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	ctx := NewContext(context.Background(), "req-1")
	if got := FromContext(ctx); got != "req-1" {
		t.Errorf("FromContext = %q, want %q", got, "req-1")
	}
}

func TestFromContext_Empty(t *testing.T) {
	if got := FromContext(context.Background()); got != "" {
		t.Errorf("FromContext = %q, want empty", got)
	}
}

func TestAttr(t *testing.T) {
	attr := Attr(NewContext(context.Background(), "req-2"))
	if attr.Key != "request_id" || attr.Value.String() != "req-2" {
		t.Errorf("Attr = %v", attr)
	}
}
