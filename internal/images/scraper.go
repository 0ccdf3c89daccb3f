package images

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"barnabus-backend/internal/store"
)

// Retail sites routinely block default HTTP-client user agents, so the
// scraper presents itself as a desktop browser.
const scraperUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

// Scraper fetches a product page and extracts its primary product image.
// Every failure mode (network, non-2xx, no matching tag) is identical to
// the caller: an empty result.
type Scraper struct {
	client *http.Client
	cache  *store.ImageCache
}

func NewScraper(timeout time.Duration, cache *store.ImageCache) *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: timeout},
		cache:  cache,
	}
}

// siteRules map hostname substrings to extraction rules for known
// retailers, tried in order before the generic meta-tag fallback.
var siteRules = []struct {
	host    string
	extract func(doc *html.Node) string
}{
	{"amazon.com", extractAmazon},
	{"bestbuy.com", func(doc *html.Node) string {
		return attrValue(findByClass(doc, "primary-image", "v-fw-medium"), "src")
	}},
	{"apple.com", func(doc *html.Node) string {
		return metaContent(doc, "property", "og:image")
	}},
	{"samsung.com", func(doc *html.Node) string {
		return metaContent(doc, "property", "og:image")
	}},
	{"newegg.com", func(doc *html.Node) string {
		return attrValue(findByClass(doc, "product-view-img-original"), "src")
	}},
}

// Scrape returns the best-guess product image URL for the page, or ""
// when nothing could be scraped. Results are memoized per page URL.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) string {
	if s.cache != nil {
		if cached, ok := s.cache.Get(pageURL); ok {
			return cached
		}
	}
	imageURL := s.scrape(ctx, pageURL)
	if imageURL != "" && s.cache != nil {
		s.cache.Set(pageURL, imageURL)
	}
	return imageURL
}

func (s *Scraper) scrape(ctx context.Context, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		log.Printf("[scrape] invalid page url %q: %v", pageURL, err)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", scraperUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Referer", "https://www.google.com/")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[scrape] fetch failed for %s: %v", pageURL, err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[scrape] %s returned status %d", pageURL, resp.StatusCode)
		return ""
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		log.Printf("[scrape] html parse failed for %s: %v", pageURL, err)
		return ""
	}

	var imageURL string
	for _, rule := range siteRules {
		if strings.Contains(base.Hostname(), rule.host) {
			imageURL = rule.extract(doc)
			break
		}
	}
	if imageURL == "" {
		imageURL = metaContent(doc, "property", "og:image")
	}
	if imageURL == "" {
		imageURL = metaContent(doc, "name", "twitter:image")
	}
	if imageURL == "" {
		log.Printf("[scrape] no image found on %s", pageURL)
		return ""
	}

	// Scraped src attributes are often page-relative.
	ref, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// Amazon's primary image lives inside #imgTagWrapperId, with
// #landingImage carrying a high-resolution variant in data-old-hires.
func extractAmazon(doc *html.Node) string {
	if wrapper := findByID(doc, "imgTagWrapperId"); wrapper != nil {
		if img := findElement(wrapper, "img"); img != nil {
			if src := attrValue(img, "src"); src != "" {
				return src
			}
		}
	}
	if landing := findByID(doc, "landingImage"); landing != nil {
		if hires := attrValue(landing, "data-old-hires"); hires != "" {
			return hires
		}
		return attrValue(landing, "src")
	}
	return ""
}

// ---- HTML node helpers ----

// visit walks the tree in document order, stopping when fn returns true.
func visit(n *html.Node, fn func(*html.Node) bool) bool {
	if n.Type == html.ElementNode && fn(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if visit(c, fn) {
			return true
		}
	}
	return false
}

func findByID(doc *html.Node, id string) *html.Node {
	var found *html.Node
	visit(doc, func(n *html.Node) bool {
		if attrValue(n, "id") == id {
			found = n
			return true
		}
		return false
	})
	return found
}

func findByClass(doc *html.Node, classes ...string) *html.Node {
	var found *html.Node
	visit(doc, func(n *html.Node) bool {
		if hasClasses(n, classes) {
			found = n
			return true
		}
		return false
	})
	return found
}

func findElement(root *html.Node, tag string) *html.Node {
	var found *html.Node
	visit(root, func(n *html.Node) bool {
		if n.Data == tag {
			found = n
			return true
		}
		return false
	})
	return found
}

func metaContent(doc *html.Node, attr, value string) string {
	var content string
	visit(doc, func(n *html.Node) bool {
		if n.Data == "meta" && attrValue(n, attr) == value {
			content = attrValue(n, "content")
			return true
		}
		return false
	})
	return content
}

func attrValue(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClasses(n *html.Node, classes []string) bool {
	have := strings.Fields(attrValue(n, "class"))
	for _, want := range classes {
		ok := false
		for _, c := range have {
			if c == want {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
