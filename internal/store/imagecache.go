package store

import (
	"sync"
	"time"
)

type cachedImage struct {
	URL      string
	StoredAt time.Time
}

// ImageCache memoizes successful scrape results per page URL so a
// product list rendered twice does not re-hit retailer pages. Entries
// expire lazily on read.
type ImageCache struct {
	mu     sync.Mutex
	ttl    time.Duration
	byPage map[string]cachedImage
}

func NewImageCache(ttl time.Duration) *ImageCache {
	return &ImageCache{
		ttl:    ttl,
		byPage: make(map[string]cachedImage),
	}
}

func (c *ImageCache) Get(pageURL string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.byPage[pageURL]
	if !ok {
		return "", false
	}
	if c.ttl > 0 && time.Since(entry.StoredAt) > c.ttl {
		delete(c.byPage, pageURL)
		return "", false
	}
	return entry.URL, true
}

func (c *ImageCache) Set(pageURL, imageURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byPage[pageURL] = cachedImage{URL: imageURL, StoredAt: time.Now()}
}
