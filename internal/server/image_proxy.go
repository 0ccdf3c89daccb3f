package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const proxyUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/97.0.4692.71 Safari/537.36"

const proxyTimeout = 10 * time.Second

// hotlinkReferers lists domains known to reject image requests without a
// same-site Referer. Unknown domains get no Referer at all.
var hotlinkReferers = []struct {
	host    string
	referer string
}{
	{"apple.com", "https://www.apple.com/"},
	{"samsung.com", "https://www.samsung.com/"},
	{"lenovo.com", "https://www.lenovo.com/"},
	{"dell.com", "https://www.dell.com/"},
}

func refererFor(imageURL string) string {
	for _, h := range hotlinkReferers {
		if strings.Contains(imageURL, h.host) {
			return h.referer
		}
	}
	return ""
}

// handleImageProxy fetches an external image server-side and re-serves
// its bytes, so the browser can render images whose hosts block
// cross-origin or hotlinked requests. Only image content passes through.
func (s *Server) handleImageProxy(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		http.Error(w, "url parameter is required", http.StatusBadRequest)
		return
	}
	// Clients sometimes double-encode; one extra decode pass is safe.
	if decoded, err := url.QueryUnescape(imageURL); err == nil {
		imageURL = decoded
	}
	if u, err := url.Parse(imageURL); err != nil || u.Scheme == "" || u.Host == "" {
		http.Error(w, "invalid url provided", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), proxyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		http.Error(w, "invalid url provided", http.StatusBadRequest)
		return
	}
	req.Header.Set("User-Agent", proxyUserAgent)
	if referer := refererFor(imageURL); referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		http.Error(w, "failed to fetch image (network error, timeout, or blocked)", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		http.Error(w, fmt.Sprintf("failed to fetch image: upstream status %d", resp.StatusCode), resp.StatusCode)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		// Refusing non-image content is a security boundary: the proxy
		// must not become an open fetch-anything relay.
		http.Error(w, fmt.Sprintf("the requested resource is not a valid image (received %q)", contentType), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, resp.Body)
}
