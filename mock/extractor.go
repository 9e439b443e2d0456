package mock

import "github.com/awalker/silverscrape"

var _ silverscrape.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor is a mock implementation of
// silverscrape.ListingExtractor.
type ListingExtractor struct {
	ExtractListingFn func(html, baseURL string) ([]silverscrape.CandidateRecord, error)
}

func (e *ListingExtractor) ExtractListing(html, baseURL string) ([]silverscrape.CandidateRecord, error) {
	return e.ExtractListingFn(html, baseURL)
}

var _ silverscrape.ProductExtractor = (*ProductExtractor)(nil)

// ProductExtractor is a mock implementation of
// silverscrape.ProductExtractor.
type ProductExtractor struct {
	ExtractProductFn func(html, pageURL string) (*silverscrape.CandidateRecord, error)
}

func (e *ProductExtractor) ExtractProduct(html, pageURL string) (*silverscrape.CandidateRecord, error) {
	return e.ExtractProductFn(html, pageURL)
}

var _ silverscrape.Pager = (*Pager)(nil)

// Pager is a mock implementation of silverscrape.Pager.
type Pager struct {
	NextPageURLFn func(html, currentURL string) (string, bool)
}

func (p *Pager) NextPageURL(html, currentURL string) (string, bool) {
	if p.NextPageURLFn == nil {
		return "", false
	}
	return p.NextPageURLFn(html, currentURL)
}
