package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/kotoba/internal/quiz"
	"github.com/at-ishikawa/kotoba/internal/testutil"
	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

func testReport() SessionReport {
	return SessionReport{
		Title:      "Study session",
		Date:       time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Mode:       quiz.ModeTyped,
		Direction:  quiz.DirectionPhoneticToTarget,
		Categories: []string{"hewan", "salam"},
		Stats: quiz.Stats{
			Score:             1,
			Attempts:          2,
			Accuracy:          50,
			AverageSimilarity: 95.45,
			Memorized:         1,
			Progress:          50,
			Level:             1,
		},
		Progress: []quiz.ProgressRow{
			{EntryID: 0, Term: "猫", Translation: "kucing", Status: quiz.StatusMemorized},
		},
		History: []quiz.Attempt{
			{Question: "いぬ", Answer: "anjng", Expected: "anjing", Similarity: 90.9, Correct: true},
			{Question: "ねこ", Answer: "kuda", Expected: "kucing", Similarity: 40, Correct: false},
		},
	}
}

func TestWriteSessionReport(t *testing.T) {
	tests := []struct {
		name         string
		templatePath func(t *testing.T) string
		data         SessionReport
		want         []string
		notWant      []string
	}{
		{
			name: "embedded template",
			templatePath: func(t *testing.T) string {
				return ""
			},
			data: testReport(),
			want: []string{
				"# Study session\n\n2026-10-18 09:30\n",
				"- Mode: typed\n- Direction: phonetic-to-target\n- Categories: hewan, salam\n\n## Summary",
				"| 1 | 2 | 50% | 95% | 1 | 50% | 1 |",
				"| --- | --- | --- |\n| 猫 | kucing | memorized |\n",
				"| いぬ | anjng | anjing | 91% | correct |\n| ねこ | kuda | kucing | 40% | wrong |\n",
			},
			notWant: []string{"- Search:"},
		},
		{
			name: "sections are omitted without marks and answers",
			templatePath: func(t *testing.T) string {
				return "/non/existent/report.md.go.tmpl"
			},
			data: func() SessionReport {
				data := testReport()
				data.SearchQuery = "ne"
				data.Progress = nil
				data.History = nil
				return data
			}(),
			want:    []string{"- Search: ne\n"},
			notWant: []string{"## Progress", "## History"},
		},
		{
			name: "filesystem template",
			templatePath: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
				content := `Score {{ .Stats.Score }} of {{ .Stats.Attempts }} ({{ percent .Stats.Accuracy }}) in {{ join .Categories "/" }}`
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))
				return path
			},
			data: testReport(),
			want: []string{"Score 1 of 2 (50%) in hewan/salam"},
		},
		{
			name: "broken filesystem template falls back",
			templatePath: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "broken.md.go.tmpl")
				require.NoError(t, os.WriteFile(path, []byte("{{ .Stats.Score "), 0644))
				return path
			},
			data: testReport(),
			want: []string{"## Summary"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteSessionReport(&buf, tt.templatePath(t), tt.data))

			got := buf.String()
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, got, notWant)
			}
		})
	}
}

func TestNewSessionReport(t *testing.T) {
	store := vocabulary.NewStore(vocabulary.NewEntries(&vocabulary.Table{
		Header: testutil.DatasetHeader,
		Rows:   testutil.DatasetRows,
	}))
	options := quiz.DefaultOptions()
	options.Shuffle = false
	options.Mode = quiz.ModeTyped
	options.Categories = []string{"hewan"}
	engine := quiz.NewEngine(store, options, quiz.NewRandom(1))
	require.NoError(t, engine.Mark(0, quiz.StatusMemorized))
	_, err := engine.SubmitTyped("kucing")
	require.NoError(t, err)

	date := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	got := NewSessionReport(engine, date)

	assert.Equal(t, date, got.Date)
	assert.Equal(t, quiz.ModeTyped, got.Mode)
	assert.Equal(t, []string{"hewan"}, got.Categories)
	assert.Equal(t, 1, got.Stats.Score)
	assert.Len(t, got.Progress, 1)
	assert.Len(t, got.History, 1)
}
