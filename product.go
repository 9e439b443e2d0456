package silverscrape

import (
	"strings"
	"time"
)

// MaxDescriptionLen is the maximum description length in code points.
// Longer descriptions are truncated at emission.
const MaxDescriptionLen = 2000

// Source identifies which extraction strategy produced a candidate.
type Source string

// Candidate provenance tags.
const (
	SourceAPI     Source = "api"
	SourceListing Source = "html-listing"
	SourceDetail  Source = "html-detail"
)

// CandidateRecord is partial product data produced by one extraction
// strategy before reconciliation. Fields that could not be derived are
// left at their zero value; absence of data is expected and is not an
// error.
type CandidateRecord struct {
	URL          string
	Name         string
	PriceDisplay string
	PriceNumeric *float64
	ImageURL     string
	SKU          string
	Availability Availability
	Description  string
	Source       Source
}

// ProductRecord is the canonical, fully reconciled record emitted
// exactly once per distinct product URL.
type ProductRecord struct {
	ID           string       `json:"-"`
	URL          string       `json:"url"`
	Name         string       `json:"name"`
	PriceDisplay string       `json:"price,omitempty"`
	PriceNumeric *float64     `json:"priceNumeric,omitempty"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	SKU          string       `json:"sku,omitempty"`
	Availability Availability `json:"availability"`
	Description  string       `json:"description,omitempty"`
	ScrapedAt    time.Time    `json:"scrapedAt"`
	ContentHash  string       `json:"-"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ProductRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "product record URL required")
	}
	return nil
}

// Reconcile merges a detail-page candidate with an index candidate
// (API or listing sourced) for the same product. Each field is taken
// from detail when present and non-empty, else from index. Either
// argument may be nil. PriceNumeric is re-derived by parsing the
// display string when no numeric value was carried forward, keeping
// the two price fields consistent. Reconciling a candidate with an
// identical copy of itself yields the same record unchanged.
func Reconcile(detail, index *CandidateRecord) *ProductRecord {
	rec := &ProductRecord{Availability: AvailabilityUnknown}

	merge := func(c *CandidateRecord) {
		if c == nil {
			return
		}
		if rec.URL == "" {
			rec.URL = NormalizeURL(c.URL)
		}
		if rec.Name == "" {
			rec.Name = c.Name
		}
		if rec.PriceDisplay == "" {
			rec.PriceDisplay = c.PriceDisplay
		}
		if rec.PriceNumeric == nil && c.PriceNumeric != nil {
			v := *c.PriceNumeric
			rec.PriceNumeric = &v
		}
		if rec.ImageURL == "" {
			rec.ImageURL = c.ImageURL
		}
		if rec.SKU == "" {
			rec.SKU = c.SKU
		}
		if rec.Description == "" {
			rec.Description = c.Description
		}
	}

	// Detail first so its non-empty fields win field-by-field.
	merge(detail)
	merge(index)

	// The detail strategy always reports an availability state, so a
	// detail candidate decides availability even when it is Unknown;
	// the index candidate is consulted only when detail is silent.
	switch {
	case detail != nil && detail.Availability != "":
		rec.Availability = detail.Availability
	case index != nil && index.Availability != "":
		rec.Availability = index.Availability
	}

	if rec.PriceNumeric == nil && rec.PriceDisplay != "" {
		if v, ok := ParsePrice(rec.PriceDisplay); ok {
			rec.PriceNumeric = &v
		}
	}
	rec.Description = TruncateDescription(rec.Description)

	return rec
}

// TruncateDescription caps a description at MaxDescriptionLen code
// points.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxDescriptionLen {
		return s
	}
	return string(runes[:MaxDescriptionLen])
}

// NormalizeURL returns the canonical dedup key for a product URL:
// the URL with any trailing slash removed.
func NormalizeURL(rawURL string) string {
	return strings.TrimRight(rawURL, "/")
}
