package mock

import (
	"context"

	"github.com/awalker/silverscrape"
)

var _ silverscrape.ProductService = (*ProductService)(nil)

// ProductService is a mock implementation of silverscrape.ProductService.
type ProductService struct {
	FindProductByURLFn func(ctx context.Context, url string) (*silverscrape.ProductRecord, error)
	FindProductsFn     func(ctx context.Context, filter silverscrape.ProductFilter) ([]*silverscrape.ProductRecord, error)
}

func (s *ProductService) FindProductByURL(ctx context.Context, url string) (*silverscrape.ProductRecord, error) {
	return s.FindProductByURLFn(ctx, url)
}

func (s *ProductService) FindProducts(ctx context.Context, filter silverscrape.ProductFilter) ([]*silverscrape.ProductRecord, error) {
	return s.FindProductsFn(ctx, filter)
}
