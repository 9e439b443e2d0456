package silverscrape

// ListingExtractor extracts product candidates from listing-page
// markup. Every returned candidate has a non-empty absolute URL;
// blocks without a usable anchor or name are dropped silently, since
// absence of data is expected on decorative markup fragments.
type ListingExtractor interface {
	// ExtractListing scans repeated product-card blocks. Relative
	// hrefs are resolved against baseURL. Candidates are
	// deduplicated by URL within the page.
	ExtractListing(html, baseURL string) ([]CandidateRecord, error)
}

// ProductExtractor extracts a single candidate from a product
// detail page. Individual missing fields degrade to absent; they
// never abort extraction of the remaining fields.
type ProductExtractor interface {
	ExtractProduct(html, pageURL string) (*CandidateRecord, error)
}

// Pager locates the next listing page.
type Pager interface {
	// NextPageURL resolves the "next page" navigation anchor against
	// currentURL. The bool result is false when no such anchor exists
	// or the resolved URL equals currentURL, which guards against
	// infinite loops on malformed pagination markup.
	NextPageURL(html, currentURL string) (string, bool)
}
