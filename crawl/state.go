package crawl

import "sync"

// State is the run-scoped crawl state shared by every task: the
// emitted-record count bounded by the quota, and the set of normalized
// product URLs already claimed. Tasks run sequentially by default, but
// State is synchronized so a run with Concurrency > 1 keeps the quota
// and dedup invariants: the count never exceeds the quota and a URL is
// never emitted twice.
type State struct {
	mu       sync.Mutex
	quota    int
	emitted  int
	inflight int
	failed   int
	seen     map[string]struct{}
}

// NewState creates run state for the given quota. A quota of zero or
// less is treated as already satisfied.
func NewState(quota int) *State {
	return &State{
		quota: quota,
		seen:  make(map[string]struct{}),
	}
}

// Claim marks the normalized URL as taken and reserves one emission
// slot, atomically. It returns false when the quota is spent or when
// the URL was claimed before. A claimed URL is never fetched for
// detail again this run, even if its slot is later released.
func (s *State) Claim(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emitted+s.inflight >= s.quota {
		return false
	}
	if _, ok := s.seen[url]; ok {
		return false
	}
	s.seen[url] = struct{}{}
	s.inflight++
	return true
}

// Complete converts a claimed slot into an emitted record.
func (s *State) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	s.emitted++
}

// Release returns a claimed slot after a failed fetch or emit so the
// run can still reach its quota. The URL stays claimed.
func (s *State) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	s.failed++
}

// Exhausted reports whether every quota slot is emitted or reserved.
func (s *State) Exhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emitted+s.inflight >= s.quota
}

// Remaining returns the number of unreserved quota slots.
func (s *State) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r := s.quota - s.emitted - s.inflight; r > 0 {
		return r
	}
	return 0
}

// Seen reports whether the normalized URL has been claimed this run.
func (s *State) Seen(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[url]
	return ok
}

// Emitted returns the number of records emitted so far.
func (s *State) Emitted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emitted
}

// Failed returns the number of claimed candidates lost to failures.
func (s *State) Failed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Quota returns the configured quota.
func (s *State) Quota() int {
	return s.quota
}
