package quiz

import (
	"github.com/at-ishikawa/kotoba/internal/testutil"
	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

// fixedRandom always draws the first candidate and never reorders.
type fixedRandom struct{}

func (fixedRandom) Intn(int) int { return 0 }
func (fixedRandom) Shuffle(int, func(i, j int)) {}

func newTestStore() *vocabulary.Store {
	return vocabulary.NewStore(vocabulary.NewEntries(&vocabulary.Table{
		Header: testutil.DatasetHeader,
		Rows:   testutil.DatasetRows,
	}))
}

func testOptions() Options {
	options := DefaultOptions()
	options.Shuffle = false
	return options
}

func entryIDs(entries []vocabulary.Entry) []int {
	ids := make([]int, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	return ids
}
