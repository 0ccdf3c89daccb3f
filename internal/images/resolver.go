package images

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"barnabus-backend/internal/types"
)

// enhanceConcurrency bounds parallel page scrapes per enhancement
// request so one large product list cannot saturate outbound sockets.
const enhanceConcurrency = 8

// Resolver turns a product into a usable image URL: scrape the product
// page when one is known, otherwise fall back to the curated map. It
// never fails and never propagates scrape errors.
type Resolver struct {
	scraper *Scraper
}

func NewResolver(scraper *Scraper) *Resolver {
	return &Resolver{scraper: scraper}
}

// Resolve always returns a non-empty URL.
func (r *Resolver) Resolve(ctx context.Context, name, productType, sourceURL string) string {
	if sourceURL != "" {
		if scraped := r.scraper.Scrape(ctx, sourceURL); scraped != "" {
			return scraped
		}
		log.Printf("[images] scrape yielded nothing for %s, using curated fallback", sourceURL)
	}
	return FallbackImage(name, productType)
}

// EnhanceProducts resolves images for a product list concurrently. Each
// product is handled in isolation; a slow or failing scrape for one item
// never blocks or degrades its siblings. Input order is preserved and the
// incoming image is kept under OriginalImage.
func (r *Resolver) EnhanceProducts(ctx context.Context, products []types.Product) []types.Product {
	out := make([]types.Product, len(products))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enhanceConcurrency)
	for i, p := range products {
		i, p := i, p
		g.Go(func() error {
			productType := p.Type
			if productType == "" {
				productType = DetectProductType(p.Name)
			}
			p.OriginalImage = p.Image
			p.Image = r.Resolve(ctx, p.Name, productType, p.SourceURL)
			out[i] = p
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// DetectProductType guesses a coarse category from the product name for
// fallback-map lookups when the model omitted the type field.
func DetectProductType(productName string) string {
	name := strings.ToLower(productName)
	switch {
	case strings.Contains(name, "laptop"), strings.Contains(name, "macbook"), strings.Contains(name, "thinkpad"):
		return "laptop"
	case strings.Contains(name, "phone"), strings.Contains(name, "iphone"), strings.Contains(name, "galaxy"), strings.Contains(name, "pixel"):
		return "phone"
	case strings.Contains(name, "desktop"), strings.Contains(name, "pc"), strings.Contains(name, "studio"), strings.Contains(name, "optiplex"):
		return "desktop"
	case strings.Contains(name, "tablet"), strings.Contains(name, "ipad"):
		return "tablet"
	}
	return "device"
}
