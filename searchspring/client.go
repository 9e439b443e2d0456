// Package searchspring implements silverscrape.SearchService against
// the SearchSpring search API that powers Silver.com's product search.
package searchspring

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/awalker/silverscrape"
)

// SearchSpring defaults for the Silver.com storefront.
const (
	DefaultEndpoint = "https://api.searchspring.net/api/search/search.json"
	DefaultSiteID   = "ey66qs"

	// DefaultTimeout bounds one API round trip.
	DefaultTimeout = 30 * time.Second
)

// Ensure Client implements silverscrape.SearchService at compile time.
var _ silverscrape.SearchService = (*Client)(nil)

// Client queries the SearchSpring API and shapes its loosely
// structured result payload into candidate records.
type Client struct {
	site     *silverscrape.Site
	endpoint string
	siteID   string
	client   *http.Client
	timeout  time.Duration
	limiter  silverscrape.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint. Used in tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithSiteID overrides the SearchSpring site ID.
func WithSiteID(siteID string) Option {
	return func(c *Client) { c.siteID = siteID }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.client = client }
}

// WithTimeout sets the per-request timeout. Defaults to
// DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLimiter applies a politeness limiter, keyed by the API host,
// before every request.
func WithLimiter(limiter silverscrape.Limiter) Option {
	return func(c *Client) { c.limiter = limiter }
}

// NewClient creates a Client for the given site.
func NewClient(site *silverscrape.Site, opts ...Option) *Client {
	c := &Client{
		site:     site,
		endpoint: DefaultEndpoint,
		siteID:   DefaultSiteID,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c
}

// payload mirrors the parts of the API response the pipeline reads.
// Result items are kept as generic key-value structures because the
// API does not guarantee which of several field spellings a given
// storefront uses.
type payload struct {
	Pagination struct {
		TotalResults int `json:"totalResults"`
	} `json:"pagination"`
	Results []map[string]any `json:"results"`
}

// Search requests one page of results. Transport failures and
// non-success statuses return EUNAVAILABLE; a payload that fails to
// decode yields an empty result.
func (c *Client) Search(ctx context.Context, query string, pageSize, page int) (*silverscrape.SearchResult, error) {
	params := url.Values{
		"siteId":         {c.siteID},
		"q":              {query},
		"resultsPerPage": {strconv.Itoa(pageSize)},
		"page":           {strconv.Itoa(page)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, req.URL.Host); err != nil {
			return nil, err
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, silverscrape.Errorf(silverscrape.EUNAVAILABLE, "search request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, silverscrape.Errorf(silverscrape.EUNAVAILABLE, "search API returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, silverscrape.Errorf(silverscrape.EUNAVAILABLE, "search response read failed: %v", err)
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		// Malformed payload degrades to zero results.
		return &silverscrape.SearchResult{}, nil
	}

	result := &silverscrape.SearchResult{Total: p.Pagination.TotalResults}
	for _, item := range p.Results {
		if rec, ok := c.shapeResult(item); ok {
			result.Records = append(result.Records, rec)
		}
	}
	return result, nil
}

// shapeResult maps one loosely structured result item to a candidate.
// Accessors are tried in priority order; the first present, non-empty
// value wins. Items lacking a URL or a name are dropped.
func (c *Client) shapeResult(item map[string]any) (silverscrape.CandidateRecord, bool) {
	rec := silverscrape.CandidateRecord{Source: silverscrape.SourceAPI}

	rec.URL = c.site.AbsoluteURL(firstString(item, "url", "product_url"))
	rec.Name = firstString(item, "name", "title")
	if rec.URL == "" || rec.Name == "" {
		return rec, false
	}

	if v, ok := firstNumber(item, "price", "sale_price"); ok {
		rec.PriceNumeric = &v
		rec.PriceDisplay = silverscrape.FormatPrice(v)
	}

	rec.ImageURL = c.site.AbsoluteURL(firstString(item, "thumbnailImageUrl", "imageUrl", "image"))
	rec.SKU = firstString(item, "sku", "uid")

	if desc := firstString(item, "description", "short_description"); desc != "" {
		rec.Description = silverscrape.StripMarkup(desc)
	}

	rec.Availability = stockState(item)

	return rec, true
}

// stockState normalizes the API's stock signal, which may be a
// boolean or one of several string spellings. Absent or unrecognized
// signals default to In Stock, matching how the storefront renders
// search results.
func stockState(item map[string]any) silverscrape.Availability {
	for _, key := range []string{"ss_in_stock", "in_stock", "availability"} {
		switch v := item[key].(type) {
		case bool:
			if v {
				return silverscrape.AvailabilityInStock
			}
			return silverscrape.AvailabilityOutOfStock
		case string:
			if v == "" {
				continue
			}
			switch strings.ToLower(v) {
			case "0", "false", "no", "out":
				return silverscrape.AvailabilityOutOfStock
			}
			return silverscrape.AvailabilityInStock
		}
	}
	return silverscrape.AvailabilityInStock
}

// firstString returns the first present, non-empty string among the
// keys. List values contribute their first string element, matching
// the API's habit of wrapping single descriptions in an array.
func firstString(item map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := item[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// firstNumber returns the first present numeric value among the keys,
// accepting numbers and numeric strings.
func firstNumber(item map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		switch v := item[key].(type) {
		case float64:
			if v != 0 {
				return v, true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f != 0 {
				return f, true
			}
		}
	}
	return 0, false
}
