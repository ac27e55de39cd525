// Package export writes the filtered dataset, memorization progress and answer history as CSV or YAML.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/kotoba/internal/quiz"
	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

// utf8BOM lets spreadsheet applications detect the encoding of CSV files.
const utf8BOM = "\ufeff"

type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yml and .yaml files and CSV otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	}
	return FormatCSV
}

var (
	progressHeader = []string{"id", "term", vocabulary.ColumnIndo, "status"}
	historyHeader  = []string{
		vocabulary.ColumnKanji,
		vocabulary.ColumnHiragana,
		vocabulary.ColumnKatakana,
		vocabulary.ColumnRomaji,
		vocabulary.ColumnIndo,
		vocabulary.ColumnEng,
		vocabulary.ColumnTipe,
		vocabulary.ColumnCatatan,
		"answer",
		"expected",
		"similarity",
		"correct",
	}
)

// WriteEntries writes entries in the dataset schema, so the output can be loaded again as a dataset.
func WriteEntries(w io.Writer, format Format, entries []vocabulary.Entry) error {
	if format == FormatYAML {
		return writeYAML(w, entries)
	}
	records := make([][]string, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entry.Record())
	}
	return writeCSV(w, vocabulary.Columns, records)
}

func WriteProgress(w io.Writer, format Format, rows []quiz.ProgressRow) error {
	if format == FormatYAML {
		return writeYAML(w, rows)
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			strconv.Itoa(row.EntryID),
			row.Term,
			row.Translation,
			string(row.Status),
		})
	}
	return writeCSV(w, progressHeader, records)
}

func WriteHistory(w io.Writer, format Format, attempts []quiz.Attempt) error {
	if format == FormatYAML {
		return writeYAML(w, attempts)
	}
	records := make([][]string, 0, len(attempts))
	for _, attempt := range attempts {
		entry := attempt.Entry
		records = append(records, []string{
			entry.Kanji,
			entry.Hiragana,
			entry.Katakana,
			entry.Romaji,
			entry.Indo,
			entry.Eng,
			entry.Tipe,
			entry.Catatan,
			attempt.Answer,
			attempt.Expected,
			strconv.FormatFloat(attempt.Similarity, 'f', 0, 64),
			strconv.FormatBool(attempt.Correct),
		})
	}
	return writeCSV(w, historyHeader, records)
}

// WriteFile creates path with its parent directories and fills it with write.
func WriteFile(path string, write func(w io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := write(file); err != nil {
		return fmt.Errorf("write(%s) > %w", path, err)
	}
	return nil
}

func writeCSV(w io.Writer, header []string, records [][]string) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("io.WriteString() > %w", err)
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("csv.Writer.Write() > %w", err)
	}
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("csv.Writer.WriteAll() > %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("yaml.Encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("yaml.Encoder.Close() > %w", err)
	}
	return nil
}
