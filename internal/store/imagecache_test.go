package store

import (
	"testing"
	"time"
)

func TestImageCacheSetGet(t *testing.T) {
	c := NewImageCache(time.Minute)
	c.Set("https://example.com/p", "https://cdn.example.com/i.jpg")

	got, ok := c.Get("https://example.com/p")
	if !ok || got != "https://cdn.example.com/i.jpg" {
		t.Errorf("Get = %q, %v", got, ok)
	}
}

func TestImageCacheMiss(t *testing.T) {
	c := NewImageCache(time.Minute)
	if _, ok := c.Get("https://example.com/unknown"); ok {
		t.Error("expected miss")
	}
}

func TestImageCacheExpiry(t *testing.T) {
	c := NewImageCache(10 * time.Millisecond)
	c.Set("https://example.com/p", "https://cdn.example.com/i.jpg")
	time.Sleep(25 * time.Millisecond)
	if _, ok := c.Get("https://example.com/p"); ok {
		t.Error("expected entry to expire")
	}
}
