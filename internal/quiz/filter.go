package quiz

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

// Criteria selects the working set of a session.
type Criteria struct {
	// Categories selects entries tagged with any of them. Empty or containing AllCategories selects everything.
	Categories []string
	// Query is matched case-insensitively as a substring of the readings, romaji and translations.
	Query           string
	Shuffle         bool
	UnmemorizedOnly bool
}

// FilterEntries returns the entries matching the categories and the query, in dataset order.
func FilterEntries(entries []vocabulary.Entry, categories []string, query string) []vocabulary.Entry {
	selected, all := selectedCategories(categories)
	// cases.Caser is stateful and cannot be shared between goroutines
	fold := cases.Fold()
	query = fold.String(strings.TrimSpace(query))

	var result []vocabulary.Entry
	for _, entry := range entries {
		if !all && !entry.HasAnyCategory(selected) {
			continue
		}
		if query != "" && !matchesQuery(entry, query, fold) {
			continue
		}
		result = append(result, entry)
	}
	return result
}

// BuildWorkingSet returns the ids of the entries to study, in presentation order.
// status reports the memorization of an entry and is only consulted with UnmemorizedOnly.
func BuildWorkingSet(entries []vocabulary.Entry, criteria Criteria, status func(id int) Status, rng Random) []int {
	filtered := FilterEntries(entries, criteria.Categories, criteria.Query)

	ids := make([]int, 0, len(filtered))
	for _, entry := range filtered {
		ids = append(ids, entry.ID)
	}
	if criteria.Shuffle && rng != nil {
		rng.Shuffle(len(ids), func(i, j int) {
			ids[i], ids[j] = ids[j], ids[i]
		})
	}
	// Memorized entries are dropped after the shuffle.
	if criteria.UnmemorizedOnly && status != nil {
		ids = slices.DeleteFunc(ids, func(id int) bool {
			return status(id) == StatusMemorized
		})
	}
	return ids
}

func selectedCategories(categories []string) (map[string]struct{}, bool) {
	if len(categories) == 0 {
		return nil, true
	}
	selected := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		category = strings.TrimSpace(category)
		if category == AllCategories {
			return nil, true
		}
		selected[category] = struct{}{}
	}
	return selected, false
}

func matchesQuery(entry vocabulary.Entry, query string, fold cases.Caser) bool {
	for _, field := range []string{entry.Hiragana, entry.Katakana, entry.Romaji, entry.Indo, entry.Eng} {
		if field == "" {
			continue
		}
		if strings.Contains(fold.String(field), query) {
			return true
		}
	}
	return false
}
