package vocabulary

import (
	"sort"
)

// Store is the in-memory dataset. It is never mutated after construction,
// so a single Store can back any number of sessions.
type Store struct {
	entries []Entry
}

func NewStore(entries []Entry) *Store {
	return &Store{entries: entries}
}

// Entries returns all entries in dataset order. Callers must not modify the slice.
func (s *Store) Entries() []Entry {
	return s.entries
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) Get(id int) (Entry, bool) {
	if id < 0 || id >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[id], true
}

// Categories returns the sorted, distinct category tags of the dataset.
func (s *Store) Categories() []string {
	counts := s.CategoryCounts()
	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// CategoryCounts returns how many entries carry each tag.
func (s *Store) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, entry := range s.entries {
		for _, category := range entry.Categories {
			counts[category]++
		}
	}
	return counts
}
