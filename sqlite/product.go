package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/awalker/silverscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ silverscrape.Sink           = (*ProductService)(nil)
	_ silverscrape.ProductService = (*ProductService)(nil)
)

// ProductService stores scraped records in SQLite. As a Sink it
// upserts by URL, so re-running a scrape refreshes existing rows
// instead of duplicating them.
type ProductService struct {
	db *DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *DB) *ProductService {
	return &ProductService{db: db}
}

// Emit inserts the record, or replaces the stored row when the URL was
// scraped before. The stored ID is preserved across upserts.
func (s *ProductService) Emit(ctx context.Context, rec *silverscrape.ProductRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.ScrapedAt.IsZero() {
		rec.ScrapedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, url, name, price_display, price_numeric, image_url, sku, availability, description, content_hash, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			name = excluded.name,
			price_display = excluded.price_display,
			price_numeric = excluded.price_numeric,
			image_url = excluded.image_url,
			sku = excluded.sku,
			availability = excluded.availability,
			description = excluded.description,
			content_hash = excluded.content_hash,
			scraped_at = excluded.scraped_at
	`, rec.ID, rec.URL, rec.Name, rec.PriceDisplay, rec.PriceNumeric, rec.ImageURL, rec.SKU,
		string(rec.Availability), rec.Description, rec.ContentHash, rec.ScrapedAt.Format(time.RFC3339))

	return err
}

// FindProductByURL retrieves a record by its normalized URL.
func (s *ProductService) FindProductByURL(ctx context.Context, url string) (*silverscrape.ProductRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, name, price_display, price_numeric, image_url, sku, availability, description, content_hash, scraped_at
		FROM products
		WHERE url = ?
	`, silverscrape.NormalizeURL(url))

	rec, err := scanProduct(row.Scan)
	if err == sql.ErrNoRows {
		return nil, silverscrape.Errorf(silverscrape.ENOTFOUND, "product not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindProducts retrieves records matching the filter, newest first.
func (s *ProductService) FindProducts(ctx context.Context, filter silverscrape.ProductFilter) ([]*silverscrape.ProductRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, name, price_display, price_numeric, image_url, sku, availability, description, content_hash, scraped_at FROM products WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, silverscrape.NormalizeURL(*filter.URL))
	}
	if filter.Availability != nil {
		query.WriteString(" AND availability = ?")
		args = append(args, string(*filter.Availability))
	}

	query.WriteString(" ORDER BY scraped_at DESC, url ASC")

	// SQLite only accepts OFFSET after LIMIT; -1 means no limit.
	switch {
	case filter.Limit > 0:
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query.WriteString(" OFFSET ?")
			args = append(args, filter.Offset)
		}
	case filter.Offset > 0:
		query.WriteString(" LIMIT -1 OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*silverscrape.ProductRecord
	for rows.Next() {
		rec, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// scanProduct reads one product row through the given Scan function.
func scanProduct(scan func(dest ...any) error) (*silverscrape.ProductRecord, error) {
	var rec silverscrape.ProductRecord
	var priceNumeric sql.NullFloat64
	var availability, scrapedAt string

	if err := scan(&rec.ID, &rec.URL, &rec.Name, &rec.PriceDisplay, &priceNumeric,
		&rec.ImageURL, &rec.SKU, &availability, &rec.Description, &rec.ContentHash, &scrapedAt); err != nil {
		return nil, err
	}

	if priceNumeric.Valid {
		v := priceNumeric.Float64
		rec.PriceNumeric = &v
	}
	rec.Availability = silverscrape.Availability(availability)

	var err error
	rec.ScrapedAt, err = time.Parse(time.RFC3339, scrapedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scraped_at: %w", err)
	}

	return &rec, nil
}
