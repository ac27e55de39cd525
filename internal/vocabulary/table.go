package vocabulary

import (
	"strings"
)

const utf8BOM = "\ufeff"

// Table is the raw tabular content read by a Source, before schema normalization.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewEntries normalizes a table into entries of the fixed schema.
// Columns absent from the header and cells absent from short rows become empty strings,
// rows whose cells are all blank are skipped, and IDs are assigned in row order.
func NewEntries(table *Table) []Entry {
	if table == nil {
		return nil
	}

	columnIndex := make(map[string]int, len(table.Header))
	for i, name := range table.Header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, ok := columnIndex[name]; ok {
			continue
		}
		columnIndex[name] = i
	}

	cell := func(row []string, column string) string {
		i, ok := columnIndex[column]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	entries := make([]Entry, 0, len(table.Rows))
	for _, row := range table.Rows {
		if isBlankRow(row) {
			continue
		}
		category := cell(row, ColumnCategory)
		entries = append(entries, Entry{
			ID:         len(entries),
			Category:   category,
			Categories: ParseCategories(category),
			Kanji:      cell(row, ColumnKanji),
			Hiragana:   cell(row, ColumnHiragana),
			Katakana:   cell(row, ColumnKatakana),
			Romaji:     cell(row, ColumnRomaji),
			Indo:       cell(row, ColumnIndo),
			Eng:        cell(row, ColumnEng),
			Tipe:       cell(row, ColumnTipe),
			Catatan:    cell(row, ColumnCatatan),
		})
	}
	return entries
}

func isBlankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
