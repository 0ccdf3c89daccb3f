package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"barnabus-backend/internal/types"
)

func newTestResolver() *Resolver {
	return NewResolver(NewScraper(2*time.Second, nil))
}

func TestResolvePrefersScrapedImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><meta property="og:image" content="https://cdn.example.com/real.jpg"></head></html>`))
	}))
	defer ts.Close()

	got := newTestResolver().Resolve(context.Background(), "MacBook Air M4", "laptop", ts.URL)
	if got != "https://cdn.example.com/real.jpg" {
		t.Errorf("Resolve = %q, want the scraped image", got)
	}
}

func TestResolveScrapeFailureFallsBackToCurated(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer ts.Close()

	got := newTestResolver().Resolve(context.Background(), "MacBook Air M4", "laptop", ts.URL)
	if !strings.Contains(got, "photo-1541807084") {
		t.Errorf("Resolve = %q, want the curated macbook air image", got)
	}
}

func TestResolveWithoutSourceUsesCuratedEntry(t *testing.T) {
	got := newTestResolver().Resolve(context.Background(), "MacBook Air M4", "laptop", "")
	if !strings.Contains(got, "photo-1541807084") {
		t.Errorf("Resolve = %q, want the curated macbook air entry, not the laptop generic", got)
	}
}

// Resolve must return a non-empty URL for any input, including garbage.
func TestResolveTotality(t *testing.T) {
	cases := []struct {
		name, ptype, source string
	}{
		{"", "", ""},
		{"???", "!!!", ""},
		{"Zorblax 9000", "toaster", "://not-a-url"},
		{"unknown thing", "device", "http://127.0.0.1:1"},
	}
	r := newShortTimeoutResolver()
	for _, c := range cases {
		if got := r.Resolve(context.Background(), c.name, c.ptype, c.source); got == "" {
			t.Errorf("Resolve(%q, %q, %q) returned empty", c.name, c.ptype, c.source)
		}
	}
}

func newShortTimeoutResolver() *Resolver {
	return NewResolver(NewScraper(500*time.Millisecond, nil))
}

func TestEnhanceProducts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><meta property="og:image" content="https://cdn.example.com/scraped.jpg"></head></html>`))
	}))
	defer ts.Close()

	in := []types.Product{
		{Name: "Dell XPS 13", Price: "$999+", Image: "https://old.example.com/a.jpg", SourceURL: ts.URL},
		{Name: "MacBook Air M4", Price: "$1099+", Image: "https://old.example.com/b.jpg"},
	}
	out := newTestResolver().EnhanceProducts(context.Background(), in)

	assert.Len(t, out, 2)
	assert.Equal(t, "Dell XPS 13", out[0].Name)
	assert.Equal(t, "https://cdn.example.com/scraped.jpg", out[0].Image)
	assert.Equal(t, "https://old.example.com/a.jpg", out[0].OriginalImage)
	assert.Contains(t, out[1].Image, "photo-1541807084")
	assert.Equal(t, "https://old.example.com/b.jpg", out[1].OriginalImage)
}

func TestEnhanceProductsIsolatesFailures(t *testing.T) {
	// One product points at a dead host; its sibling must still resolve.
	in := []types.Product{
		{Name: "ThinkPad X1 Carbon", SourceURL: "http://127.0.0.1:1"},
		{Name: "iPad Pro"},
	}
	out := newShortTimeoutResolver().EnhanceProducts(context.Background(), in)
	for i, p := range out {
		if p.Image == "" {
			t.Errorf("product %d has empty image", i)
		}
	}
}

func TestDetectProductType(t *testing.T) {
	cases := map[string]string{
		"MacBook Air M4":         "laptop",
		"iPhone 16 Pro":          "phone",
		"Samsung Galaxy S25":     "phone",
		"Mac Studio":             "desktop",
		"iPad Air":               "tablet",
		"Sony WH-1000XM5":        "device",
		"Dell OptiPlex":          "desktop",
		"Lenovo ThinkPad X1":     "laptop",
		"Samsung Galaxy Tab S10": "phone",
	}
	for name, want := range cases {
		if got := DetectProductType(name); got != want {
			t.Errorf("DetectProductType(%q) = %q, want %q", name, got, want)
		}
	}
}
