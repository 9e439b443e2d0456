package mock

import (
	"context"

	"github.com/awalker/silverscrape"
)

var _ silverscrape.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of silverscrape.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, pageSize, page int) (*silverscrape.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, pageSize, page int) (*silverscrape.SearchResult, error) {
	return s.SearchFn(ctx, query, pageSize, page)
}
