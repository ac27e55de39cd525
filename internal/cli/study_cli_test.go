package cli

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/kotoba/internal/quiz"
	"github.com/at-ishikawa/kotoba/internal/testutil"
	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

func newTestEngine(t *testing.T, configure func(options *quiz.Options)) *quiz.Engine {
	t.Helper()

	store := vocabulary.NewStore(vocabulary.NewEntries(&vocabulary.Table{
		Header: testutil.DatasetHeader,
		Rows:   testutil.DatasetRows,
	}))
	options := quiz.DefaultOptions()
	options.Shuffle = false
	options.Categories = []string{"hewan"}
	if configure != nil {
		configure(&options)
	}
	return quiz.NewEngine(store, options, quiz.NewRandom(1))
}

func TestStudyCLI_Run(t *testing.T) {
	tests := []struct {
		name      string
		configure func(options *quiz.Options)
		input     func(engine *quiz.Engine) string
		want      []string
		validate  func(t *testing.T, engine *quiz.Engine)
	}{
		{
			name: "flashcard commands",
			input: func(*quiz.Engine) string {
				return "s\nm\nn\nu\np\nx\nq\n"
			},
			want: []string{
				"[1/2] ねこ (neko)",
				"Answer: kucing",
				"猫 | ねこ | neko | cat | noun",
				"Marked ねこ as memorized",
				"[2/2] いぬ (inu)",
				"Marked いぬ as not memorized",
				"[1/2] ねこ (neko) ★",
				`Unknown command "x"`,
			},
			validate: func(t *testing.T, engine *quiz.Engine) {
				assert.Equal(t, quiz.StatusMemorized, engine.Session().Status(0))
				assert.Equal(t, quiz.StatusNotMemorized, engine.Session().Status(1))
				assert.Equal(t, 0, engine.Session().Position)
				assert.Len(t, engine.ProgressRows(), 2)
			},
		},
		{
			name: "casual mode advances and scores marks",
			configure: func(options *quiz.Options) {
				options.AdvanceOnMark = quiz.AdvanceWraparound
			},
			input: func(*quiz.Engine) string {
				return "m\nm\nm\nq\n"
			},
			want: []string{"Score 10 |", "Score 20 |", "Score 30 |", "[1/2] ねこ"},
			validate: func(t *testing.T, engine *quiz.Engine) {
				assert.Equal(t, 30, engine.Stats().Score)
				assert.Equal(t, 1, engine.Session().Position)
			},
		},
		{
			name: "flashcard reshuffle and reset",
			input: func(*quiz.Engine) string {
				return "r\nz\n"
			},
			want: []string{"Cards reshuffled", "Score reset"},
		},
		{
			name: "typed answers until the cards run out",
			configure: func(options *quiz.Options) {
				options.Mode = quiz.ModeTyped
			},
			input: func(*quiz.Engine) string {
				return "Kucing\nkuda\n"
			},
			want: []string{
				"✅ Correct (similarity 100%)",
				"❌ Wrong",
				"Answer: anjing",
				"No more cards to practice!",
			},
			validate: func(t *testing.T, engine *quiz.Engine) {
				assert.Equal(t, quiz.StateExhausted, engine.State())
				assert.Equal(t, 1, engine.Stats().Score)
				assert.Equal(t, 2, engine.Stats().Attempts)
			},
		},
		{
			name: "typed quit",
			configure: func(options *quiz.Options) {
				options.Mode = quiz.ModeTyped
			},
			input: func(*quiz.Engine) string {
				return ":q\n"
			},
			validate: func(t *testing.T, engine *quiz.Engine) {
				assert.Equal(t, 0, engine.Stats().Attempts)
			},
		},
		{
			name: "multiple choice",
			configure: func(options *quiz.Options) {
				options.Mode = quiz.ModeMCQ
			},
			input: func(engine *quiz.Engine) string {
				card, err := engine.Current()
				if err != nil {
					return ""
				}
				correct := slices.Index(card.Options, card.Answer) + 1
				return fmt.Sprintf("9\nabc\n%d\nq\n", correct)
			},
			want: []string{
				"Choose a number between 1 and 4",
				"✅ Correct",
				"[2/2] いぬ",
			},
			validate: func(t *testing.T, engine *quiz.Engine) {
				assert.Equal(t, 1, engine.Stats().Score)
				assert.Equal(t, 1, engine.Stats().Attempts)
			},
		},
		{
			name: "no results",
			configure: func(options *quiz.Options) {
				options.SearchQuery = "xyz"
			},
			input: func(*quiz.Engine) string {
				return ""
			},
			want: []string{"No entries match the current filters."},
		},
		{
			name: "romaji is hidden when it is the answer side",
			configure: func(options *quiz.Options) {
				options.Direction = quiz.DirectionTargetToPhonetic
			},
			input: func(*quiz.Engine) string {
				return "s\n"
			},
			want: []string{"[1/2] kucing\n", "Answer: ねこ"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t, tt.configure)
			var stdout bytes.Buffer
			cli := NewStudyCLI(engine, true, strings.NewReader(tt.input(engine)), &stdout)

			require.NoError(t, cli.Run(context.Background(), cli))

			for _, want := range tt.want {
				assert.Contains(t, stdout.String(), want)
			}
			if tt.validate != nil {
				tt.validate(t, engine)
			}
		})
	}
}

func TestStudyCLI_PrintSummary(t *testing.T) {
	engine := newTestEngine(t, func(options *quiz.Options) {
		options.Mode = quiz.ModeTyped
	})
	_, err := engine.SubmitTyped("kucing")
	require.NoError(t, err)

	var stdout bytes.Buffer
	cli := NewStudyCLI(engine, false, strings.NewReader(""), &stdout)
	cli.PrintSummary()

	assert.Contains(t, stdout.String(), "Session summary")
	assert.Contains(t, stdout.String(), "Score 1 | attempts 1 | accuracy 100% | memorized 0 | progress 0% | level 1")
	assert.Contains(t, stdout.String(), "Average similarity 100%")
}
