package silverscrape

import "context"

// SearchResult is one page of results from the search API, already
// shaped into candidate records.
type SearchResult struct {
	// Total is the API's reported total result count across all
	// pages, for pagination diagnostics. The orchestrator decides
	// when to stop, driven by the quota and by empty pages.
	Total int

	// Records are the candidates returned for this page, in API
	// order. Each has a non-empty absolute URL and a name; items
	// lacking both are dropped by the implementation.
	Records []CandidateRecord
}

// SearchService queries the catalog's structured search API.
type SearchService interface {
	// Search requests one page of results. Page numbers start at 1.
	// Transport failures and unexpected statuses are returned as
	// EUNAVAILABLE errors; a malformed payload yields an empty
	// result, not an error.
	Search(ctx context.Context, query string, pageSize, page int) (*SearchResult, error)
}
