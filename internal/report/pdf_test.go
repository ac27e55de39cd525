package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/kotoba/internal/quiz"
)

// latinReport keeps to characters the core PDF fonts can lay out.
func latinReport() SessionReport {
	data := testReport()
	data.Progress = []quiz.ProgressRow{
		{EntryID: 0, Term: "neko", Translation: "kucing", Status: quiz.StatusMemorized},
	}
	data.History = []quiz.Attempt{
		{Question: "inu", Answer: "anjng", Expected: "anjing", Similarity: 90.9, Correct: true},
	}
	return data
}

func TestWriteSessionPDF(t *testing.T) {
	tests := []struct {
		name         string
		pdfPath      func(dir string) string
		templatePath func(dir string) string
		wantErrMsg   string
	}{
		{
			name:       "invalid extension",
			pdfPath:    func(dir string) string { return filepath.Join(dir, "report.md") },
			wantErrMsg: "output file must have .pdf extension",
		},
		{
			name:    "broken template falls back to the embedded one",
			pdfPath: func(dir string) string { return filepath.Join(dir, "report.pdf") },
			templatePath: func(dir string) string {
				path := filepath.Join(dir, "broken.md.go.tmpl")
				require.NoError(t, os.WriteFile(path, []byte("{{ .Missing "), 0644))
				return path
			},
		},
		{
			name:    "creates the output directory",
			pdfPath: func(dir string) string { return filepath.Join(dir, "reports", "2026", "session.pdf") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			pdfPath := tt.pdfPath(dir)
			templatePath := ""
			if tt.templatePath != nil {
				templatePath = tt.templatePath(dir)
			}

			got, err := WriteSessionPDF(pdfPath, templatePath, latinReport())

			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.NoFileExists(t, pdfPath)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
			assert.Equal(t, pdfPath, got)
			content, err := os.ReadFile(got)
			require.NoError(t, err)
			assert.True(t, len(content) > 4 && string(content[:4]) == "%PDF", "output is a PDF document")
		})
	}
}
