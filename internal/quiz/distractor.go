package quiz

import (
	"slices"

	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

// GenerateOptions returns up to count multiple-choice options: correct plus distinct, non-empty
// values drawn from the other entries, in random order. exclude is the id of the entry being asked.
// Candidates are drawn without replacement, so generation stops once the pool is exhausted.
func GenerateOptions(
	correct string,
	entries []vocabulary.Entry,
	exclude int,
	count int,
	value func(vocabulary.Entry) string,
	rng Random,
) []string {
	options := []string{correct}

	remaining := make([]int, 0, len(entries))
	for i, entry := range entries {
		if entry.ID == exclude {
			continue
		}
		remaining = append(remaining, i)
	}

	for len(options) < count && len(remaining) > 0 {
		drawn := rng.Intn(len(remaining))
		candidate := value(entries[remaining[drawn]])
		remaining[drawn] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]

		if candidate == "" || slices.Contains(options, candidate) {
			continue
		}
		options = append(options, candidate)
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
