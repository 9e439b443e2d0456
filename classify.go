package silverscrape

import (
	"net/url"
	"strings"
)

// Run configuration defaults, matching the site's catalog behavior.
const (
	// DefaultQuota is the run-wide maximum number of emitted records.
	DefaultQuota = 10

	// DefaultPageSize is the number of results requested per search
	// API page.
	DefaultPageSize = 48

	// DefaultQuery is used when a run is started with no queries and
	// no start URLs at all.
	DefaultQuery = "Silver coin"
)

// InputKind is the classification of a URL or raw query input.
type InputKind int

// Input kinds, in classification precedence order.
const (
	KindSearch InputKind = iota
	KindListing
	KindProduct
	KindUnknown
)

// String returns a short label for logging.
func (k InputKind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindListing:
		return "listing"
	case KindProduct:
		return "product"
	default:
		return "unknown"
	}
}

// ClassifiedInput is the result of classifying one input. Immutable
// once computed.
type ClassifiedInput struct {
	Kind InputKind
	URL  string
	// Query holds the extracted search term when Kind is KindSearch.
	Query string
}

// Site describes the target catalog site's URL structure.
type Site struct {
	// Host is the canonical host, e.g. "www.silver.com".
	Host string

	// Aliases are alternate hosts accepted as the same site.
	Aliases []string

	// BaseURL is used to absolutize relative paths, without a
	// trailing slash.
	BaseURL string

	// CatalogRoots are first path segments that mark listing pages.
	CatalogRoots []string

	// SkipSegments are path segments of known non-catalog pages.
	SkipSegments []string
}

// DefaultSite returns the Silver.com site description.
func DefaultSite() *Site {
	return &Site{
		Host:    "www.silver.com",
		Aliases: []string{"silver.com"},
		BaseURL: "https://www.silver.com",
		CatalogRoots: []string{
			"silver-bullion", "gold-bullion", "platinum-bullion",
			"palladium-bullion", "silver-coins", "gold-coins",
			"silver-bars", "gold-bars", "silver-rounds",
			"product-category",
		},
		SkipSegments: []string{
			"about", "contact", "faq", "help", "blog", "my-account",
			"cart", "checkout", "shipping", "privacy", "terms",
			"wp-admin", "wp-content",
		},
	}
}

// Owns reports whether the host belongs to this site.
func (s *Site) Owns(host string) bool {
	if strings.EqualFold(host, s.Host) {
		return true
	}
	for _, alias := range s.Aliases {
		if strings.EqualFold(host, alias) {
			return true
		}
	}
	return false
}

// AbsoluteURL resolves a possibly relative catalog path against the
// site base.
func (s *Site) AbsoluteURL(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if strings.HasPrefix(ref, "/") {
		return s.BaseURL + ref
	}
	return s.BaseURL + "/" + ref
}

// Classify maps a URL to the extraction path that applies to it.
// Classification is cheap, deterministic, and side-effect-free so the
// orchestrator can branch without a network round trip.
//
// Rules, first match wins: off-site hosts are rejected with EINVALID;
// URLs carrying a search parameter (s or q) or a /search segment are
// searches; empty paths, catalog roots, product-category and page
// segments are listings; known non-catalog segments are unknown; a
// single dot-free path segment is the structural signature of this
// site's product permalinks; everything else is unknown.
func (s *Site) Classify(rawURL string) (ClassifiedInput, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ClassifiedInput{}, Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ClassifiedInput{}, Errorf(EINVALID, "unsupported scheme %q", rawURL)
	}
	if !s.Owns(u.Hostname()) {
		return ClassifiedInput{}, Errorf(EINVALID, "host %q is not %s", u.Hostname(), s.Host)
	}

	path := strings.ToLower(strings.Trim(u.Path, "/"))
	segments := splitSegments(path)

	// Search: query parameter or a /search path segment.
	q := u.Query()
	if q.Has("s") || q.Has("q") || containsSegment(segments, "search") {
		query := q.Get("s")
		if query == "" {
			query = q.Get("q")
		}
		return ClassifiedInput{Kind: KindSearch, URL: rawURL, Query: query}, nil
	}

	// Listing: site root, a known catalog root, a product-category
	// segment, or a paginated path.
	if path == "" ||
		(len(segments) > 0 && containsString(s.CatalogRoots, segments[0])) ||
		strings.Contains(path, "product-category") ||
		containsSegment(segments, "page") {
		return ClassifiedInput{Kind: KindListing, URL: rawURL}, nil
	}

	// Known non-catalog pages.
	for _, skip := range s.SkipSegments {
		if containsSegment(segments, skip) {
			return ClassifiedInput{Kind: KindUnknown, URL: rawURL}, nil
		}
	}

	// Product permalinks are a single dot-free path segment.
	if len(segments) == 1 && !strings.Contains(segments[0], ".") {
		return ClassifiedInput{Kind: KindProduct, URL: rawURL}, nil
	}

	return ClassifiedInput{Kind: KindUnknown, URL: rawURL}, nil
}

func splitSegments(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func containsSegment(segments []string, want string) bool {
	for _, seg := range segments {
		if seg == want {
			return true
		}
	}
	return false
}

func containsString(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
