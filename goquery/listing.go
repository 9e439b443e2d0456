// Package goquery provides HTML extraction strategies for the
// Silver.com catalog using CSS selectors. It covers WooCommerce
// listing cards, product detail pages, and pagination markup.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalker/silverscrape"
)

// Listing-card selectors for the site's WooCommerce theme.
const (
	cardSelector      = ".product, .type-product, .products .product"
	cardTitleSelector = ".woocommerce-loop-product__title, h2, h3"
	cardPriceSelector = ".price .woocommerce-Price-amount, .price .amount, .price"
)

// minNameLen guards against decorative or empty cards: candidates
// whose derived name is this short are rejected.
const minNameLen = 3

// Ensure ListingExtractor implements silverscrape.ListingExtractor at
// compile time.
var _ silverscrape.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor extracts product candidates from listing-page
// markup.
type ListingExtractor struct {
	site *silverscrape.Site
}

// NewListingExtractor creates a ListingExtractor scoped to the site.
func NewListingExtractor(site *silverscrape.Site) *ListingExtractor {
	return &ListingExtractor{site: site}
}

// ExtractListing scans repeated product-card blocks. Blocks without a
// usable anchor are skipped, off-site links are dropped, and
// candidates are deduplicated by URL within the page. Markup that
// fails to parse yields an empty list, not an error.
func (e *ListingExtractor) ExtractListing(html, baseURL string) ([]silverscrape.CandidateRecord, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, silverscrape.Errorf(silverscrape.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil
	}

	seen := make(map[string]bool)
	var records []silverscrape.CandidateRecord

	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		anchor := card.Find("a[href]").First()
		href, ok := anchor.Attr("href")
		if !ok || href == "" {
			return
		}

		resolved := resolveRef(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		u, err := url.Parse(resolved)
		if err != nil || !e.site.Owns(u.Hostname()) {
			return
		}
		seen[resolved] = true

		name := strings.TrimSpace(card.Find(cardTitleSelector).First().Text())
		if name == "" {
			name = strings.TrimSpace(anchor.Text())
		}
		if len(name) <= minNameLen {
			return
		}

		price := strings.TrimSpace(card.Find(cardPriceSelector).First().Text())
		if strings.Count(price, "$") > 1 {
			if last := silverscrape.LastPriceFragment(price); last != "" {
				price = last
			}
		}

		image := ""
		if img := card.Find("img").First(); img.Length() > 0 {
			image, _ = img.Attr("src")
			if image == "" {
				// Lazy-loaded gallery images carry the real source
				// in data-src.
				image, _ = img.Attr("data-src")
			}
		}

		records = append(records, silverscrape.CandidateRecord{
			URL:          resolved,
			Name:         name,
			PriceDisplay: price,
			ImageURL:     image,
			Source:       silverscrape.SourceListing,
		})
	})

	return records, nil
}

// resolveRef resolves a href against a base URL, stripping fragments.
// Returns "" when the href cannot be parsed.
func resolveRef(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}
