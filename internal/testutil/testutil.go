// Package testutil provides shared test helpers for creating config files and dataset fixtures.
package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// DatasetHeader is the full dataset header in canonical order.
var DatasetHeader = []string{"kategori", "kanji", "hiragana", "katakana", "romaji", "indo", "eng", "tipe", "catatan"}

// DatasetRows is a small dataset covering several categories, a katakana-only word,
// and a multi-category row.
var DatasetRows = [][]string{
	{"hewan", "猫", "ねこ", "", "neko", "kucing", "cat", "noun", ""},
	{"hewan", "犬", "いぬ", "", "inu", "anjing", "dog", "noun", ""},
	{"makanan, minuman", "水", "みず", "", "mizu", "air", "water", "noun", ""},
	{"makanan", "", "", "パン", "pan", "roti", "bread", "noun", "loanword"},
	{"salam", "", "こんにちは", "", "konnichiwa", "selamat siang", "hello", "phrase", ""},
	{"kata kerja", "食べる", "たべる", "", "taberu", "makan", "to eat", "verb", "ru-verb"},
}

// WriteDatasetCSV writes a BOM-prefixed CSV file and returns its path.
func WriteDatasetCSV(t *testing.T, dir string, header []string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, "kosakata.csv")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer func() {
		_ = file.Close()
	}()

	_, err = file.WriteString("\ufeff")
	require.NoError(t, err)
	writer := csv.NewWriter(file)
	require.NoError(t, writer.Write(header))
	require.NoError(t, writer.WriteAll(rows))
	require.NoError(t, writer.Error())
	return path
}

// SetupTestConfig writes a config file pointing at datasetPath and returns its path.
func SetupTestConfig(t *testing.T, tmpDir string, datasetPath string) string {
	t.Helper()

	reportDir := filepath.Join(tmpDir, "reports")
	require.NoError(t, os.MkdirAll(reportDir, 0755))

	configContent := fmt.Sprintf(`dataset:
  path: %s
study:
  shuffle: false
  seed: 1
report:
  output_directory: %s
`,
		datasetPath,
		reportDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}
