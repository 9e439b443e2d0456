// Package bloom provides probabilistic visited-page tracking for the
// crawl orchestrator. It guards listing pagination against cycles
// without holding every visited page URL in memory.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// VisitedSet records which page URLs a run has already walked. It is
// safe for concurrent use by multiple crawl tasks. False positives are
// possible, which at worst ends a pagination walk one page early;
// false negatives are not, so a cycle can never spin forever.
type VisitedSet struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewVisitedSet sizes the set for n expected pages at the given false
// positive rate.
func NewVisitedSet(n uint, fpRate float64) *VisitedSet {
	return &VisitedSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit marks the URL visited. Returns false if it was (probably)
// visited before.
func (s *VisitedSet) Visit(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f.TestString(url) {
		return false
	}
	s.f.AddString(url)
	return true
}

// Pages returns the approximate number of distinct pages visited.
func (s *VisitedSet) Pages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.f.ApproximatedSize())
}
