package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/kotoba/internal/quiz"
)

func TestStudyCommand(t *testing.T) {
	tests := []struct {
		name            string
		args            []string
		stdin           string
		wantErrContains string
		wantContains    []string
	}{
		{
			name:  "flashcard quit",
			stdin: "s\nq\n",
			wantContains: []string{
				"[1/6] ねこ (neko)",
				"Answer: kucing",
				"猫 | ねこ | neko | cat | noun",
				"Session summary",
			},
		},
		{
			name:  "typed answers until exhausted",
			args:  []string{"--mode", "typed", "--category", "hewan"},
			stdin: "kucing\nkuda\n",
			wantContains: []string{
				"[1/2] ねこ",
				"Correct (similarity 100%)",
				"[2/2] いぬ",
				"Wrong",
				"No more cards to practice!",
				"Score 1 | attempts 2 | accuracy 50%",
			},
		},
		{
			name:  "multiple choice",
			args:  []string{"--mode", "mcq", "--direction", "roman-to-target", "--query", "neko", "--options", "2"},
			stdin: "9\nq\n",
			wantContains: []string{
				"[1/1] neko",
				"Choose a number between 1 and 2",
			},
		},
		{
			name:         "no results",
			args:         []string{"--query", "xyz"},
			wantContains: []string{"No entries match the current filters."},
		},
		{
			name:            "invalid override",
			args:            []string{"--options", "9"},
			wantErrContains: "invalid configuration",
		},
		{
			name:            "invalid flag value",
			args:            []string{"--mode", "quiz"},
			wantErrContains: "invalid mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath, _ := setupDataset(t)

			args := append([]string{"--config", cfgPath, "study"}, tt.args...)
			got, err := executeCommand(t, tt.stdin, args...)

			if tt.wantErrContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrContains)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestStudyCommand_Outputs(t *testing.T) {
	cfgPath, tmpDir := setupDataset(t)
	progressPath := filepath.Join(tmpDir, "out", "progress.yaml")
	historyPath := filepath.Join(tmpDir, "out", "history.csv")

	got, err := executeCommand(t, "m\nn\nu\nq\n",
		"--config", cfgPath, "study",
		"--report",
		"--progress", progressPath,
		"--history", historyPath,
	)
	require.NoError(t, err)
	assert.Contains(t, got, "Marked ねこ as memorized")
	assert.Contains(t, got, "Marked いぬ as not memorized")
	assert.Contains(t, got, "Progress written to "+progressPath)
	assert.Contains(t, got, "History written to "+historyPath)

	content, err := os.ReadFile(progressPath)
	require.NoError(t, err)
	var rows []quiz.ProgressRow
	require.NoError(t, yaml.Unmarshal(content, &rows))
	assert.Equal(t, []quiz.ProgressRow{
		{EntryID: 0, Term: "猫", Translation: "kucing", Status: quiz.StatusMemorized},
		{EntryID: 1, Term: "犬", Translation: "anjing", Status: quiz.StatusNotMemorized},
	}, rows)

	content, err = os.ReadFile(historyPath)
	require.NoError(t, err)
	assert.Equal(t, "\ufeffkanji,hiragana,katakana,romaji,indo,eng,tipe,catatan,answer,expected,similarity,correct\n", string(content))

	reports, err := filepath.Glob(filepath.Join(tmpDir, "reports", "session-*.md"))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Contains(t, got, "Report written to "+reports[0])
	report, err := os.ReadFile(reports[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(report), "# Study session"), string(report))
}
