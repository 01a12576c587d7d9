// Package catalog holds the client's view of the backend listing: the
// current files, the filter selection, the category histogram and the
// connection indicator. A single Store is shared by reference between the
// orchestration and rendering code.
package catalog

import (
	"sync"

	"mediadeck/pkg/types"
)

// Store is the mutable client state. Every mutation overwrites whole values;
// nothing is merged incrementally.
type Store struct {
	mu             sync.RWMutex
	files          []types.FileRecord
	filters        types.FilterState
	categories     []types.CategoryCount
	activeCategory string
	connected      bool
	inflight       int
	lastErr        error
	generation     uint64
}

// NewStore creates a store with every filter set to "all"
func NewStore() *Store {
	return &Store{
		filters:        types.NoFilters(),
		activeCategory: types.All,
	}
}

// Files returns the current listing
func (s *Store) Files() []types.FileRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files
}

// Filters returns the current filter selection
func (s *Store) Filters() types.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// Categories returns the last category histogram
func (s *Store) Categories() []types.CategoryCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories
}

// CategoryCount returns the count shown on a category badge
func (s *Store) CategoryCount(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Name == name {
			return c.Count, true
		}
	}
	return 0, false
}

// ActiveCategory returns the category currently marked active
func (s *Store) ActiveCategory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeCategory
}

// Connected reports whether the last API call succeeded
func (s *Store) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Loading reports whether any call is still in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// LastError returns the error of the last failed call, cleared on success
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Generation increments every time the listing is replaced
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// SetControls overwrites the filters from the two select controls and the
// active category, and returns the new selection.
func (s *Store) SetControls(fileType string, score types.ScoreBand) types.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = types.FilterState{
		Type:     orAll(fileType),
		Score:    types.ScoreBand(orAll(string(score))),
		Category: s.activeCategory,
	}
	return s.filters
}

// SetActiveCategory marks a category active and folds it into the filters
func (s *Store) SetActiveCategory(name string) types.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeCategory = orAll(name)
	s.filters = types.FilterState{
		Type:     s.filters.Type,
		Score:    s.filters.Score,
		Category: s.activeCategory,
	}
	return s.filters
}

// CategoryOptions returns "all" followed by every known category name
func (s *Store) CategoryOptions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	opts := make([]string, 0, len(s.categories)+1)
	opts = append(opts, types.All)
	for _, c := range s.categories {
		opts = append(opts, c.Name)
	}
	return opts
}

// BeginLoad marks one more call as in flight. Every BeginLoad is settled by
// exactly one Replace, Succeed or Fail.
func (s *Store) BeginLoad() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

// settle must be called with mu held
func (s *Store) settle() {
	if s.inflight > 0 {
		s.inflight--
	}
}

// Replace installs a fetched listing, fully overwriting the previous one.
// Categories are only replaced when the response carried some.
func (s *Store) Replace(result types.FileListResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = result.Data
	if result.Categories != nil {
		s.categories = result.Categories
	}
	s.connected = true
	s.settle()
	s.lastErr = nil
	s.generation++
}

// SetCategories replaces the category histogram
func (s *Store) SetCategories(cats []types.CategoryCount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = cats
	s.connected = true
}

// Succeed marks a call that returned no listing (e.g. an upload) as done
func (s *Store) Succeed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	s.settle()
	s.lastErr = nil
}

// Fail records a failed call. The previous listing is kept.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	s.settle()
	s.lastErr = err
}

func orAll(v string) string {
	if v == "" {
		return types.All
	}
	return v
}
