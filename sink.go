package silverscrape

import "context"

// Sink receives reconciled records. Append-only; emission order is
// preserved within a single crawl task but not across tasks.
type Sink interface {
	Emit(ctx context.Context, rec *ProductRecord) error
}

// ProductService provides read access to previously emitted records.
type ProductService interface {
	// FindProductByURL retrieves a record by its normalized URL.
	// Returns ENOTFOUND if no record matches.
	FindProductByURL(ctx context.Context, url string) (*ProductRecord, error)

	// FindProducts retrieves records matching the filter, newest
	// first.
	FindProducts(ctx context.Context, filter ProductFilter) ([]*ProductRecord, error)
}

// ProductFilter is a filter passed to FindProducts.
type ProductFilter struct {
	URL          *string
	Availability *Availability

	Limit  int
	Offset int
}
