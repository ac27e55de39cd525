package quiz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterEntries(t *testing.T) {
	entries := newTestStore().Entries()

	tests := []struct {
		name       string
		categories []string
		query      string
		want       []int
	}{
		{name: "all sentinel", categories: []string{AllCategories}, want: []int{0, 1, 2, 3, 4, 5}},
		{name: "no categories", want: []int{0, 1, 2, 3, 4, 5}},
		{name: "sentinel among categories", categories: []string{"hewan", AllCategories}, want: []int{0, 1, 2, 3, 4, 5}},
		{name: "single category", categories: []string{"hewan"}, want: []int{0, 1}},
		{name: "second tag of a row", categories: []string{"minuman"}, want: []int{2}},
		{name: "category intersection", categories: []string{"makanan", "salam"}, want: []int{2, 3, 4}},
		{name: "query in romaji is case-insensitive", query: "NE", want: []int{0}},
		{name: "query is trimmed", query: "  cat ", want: []int{0}},
		{name: "query is a substring match", query: "an", want: []int{1, 3, 4, 5}},
		{name: "query in katakana", query: "パ", want: []int{3}},
		{name: "query in hiragana", query: "にち", want: []int{4}},
		{name: "category and query", categories: []string{"hewan"}, query: "dog", want: []int{1}},
		{name: "no match", query: "xyz", want: []int{}},
		{name: "unknown category", categories: []string{"angka"}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEntries(entries, tt.categories, tt.query)
			assert.Equal(t, tt.want, entryIDs(got))
		})
	}
}

func TestBuildWorkingSet(t *testing.T) {
	entries := newTestStore().Entries()
	memorized := func(id int) Status {
		if id == 0 || id == 3 {
			return StatusMemorized
		}
		return StatusNotMemorized
	}

	tests := []struct {
		name     string
		criteria Criteria
		status   func(id int) Status
		want     []int
	}{
		{
			name:     "dataset order without shuffle",
			criteria: Criteria{Categories: []string{AllCategories}},
			want:     []int{0, 1, 2, 3, 4, 5},
		},
		{
			name:     "unmemorized only drops memorized entries",
			criteria: Criteria{Categories: []string{AllCategories}, UnmemorizedOnly: true},
			status:   memorized,
			want:     []int{1, 2, 4, 5},
		},
		{
			name:     "memorization is ignored without the flag",
			criteria: Criteria{Categories: []string{"hewan"}},
			status:   memorized,
			want:     []int{0, 1},
		},
		{
			name:     "empty result",
			criteria: Criteria{Query: "xyz", UnmemorizedOnly: true},
			status:   memorized,
			want:     []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildWorkingSet(entries, tt.criteria, tt.status, fixedRandom{})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildWorkingSet_Shuffle(t *testing.T) {
	entries := newTestStore().Entries()
	criteria := Criteria{Categories: []string{AllCategories}, Shuffle: true}

	first := BuildWorkingSet(entries, criteria, nil, rand.New(rand.NewSource(42)))
	second := BuildWorkingSet(entries, criteria, nil, rand.New(rand.NewSource(42)))

	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, first)
	assert.Equal(t, first, second, "the same seed must give the same order")
}

func TestBuildWorkingSet_ShuffleBeforeDroppingMemorized(t *testing.T) {
	entries := newTestStore().Entries()
	criteria := Criteria{Categories: []string{AllCategories}, Shuffle: true}
	shuffled := BuildWorkingSet(entries, criteria, nil, rand.New(rand.NewSource(42)))

	memorized := map[int]bool{shuffled[0]: true, shuffled[3]: true}
	criteria.UnmemorizedOnly = true
	got := BuildWorkingSet(entries, criteria, func(id int) Status {
		if memorized[id] {
			return StatusMemorized
		}
		return StatusNotMemorized
	}, rand.New(rand.NewSource(42)))

	assert.Equal(t, []int{shuffled[1], shuffled[2], shuffled[4], shuffled[5]}, got)
}
