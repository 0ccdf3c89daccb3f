// Package pexels is a minimal client for the Pexels photo search API,
// used as the image-search passthrough provider.
package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.pexels.com/v1"

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(apiKey string) *Client {
	return NewClientWithBase(apiKey, defaultBaseURL)
}

// NewClientWithBase exists for tests that point the client at a local
// server.
func NewClientWithBase(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

func (c *Client) Configured() bool { return c.apiKey != "" }

type searchResponse struct {
	Photos []struct {
		Src struct {
			Large string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

// SearchOne returns the large rendition of the first photo matching the
// query, or "" when the search came back empty.
func (c *Client) SearchOne(ctx context.Context, query string) (string, error) {
	qv := url.Values{}
	qv.Set("query", query)
	qv.Set("per_page", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+qv.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("pexels search failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", err
	}
	if len(sr.Photos) == 0 {
		return "", nil
	}
	return sr.Photos[0].Src.Large, nil
}
