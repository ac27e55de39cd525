// Package vocabulary loads the word dataset and keeps it as a read-only store shared by study sessions.
package vocabulary

import (
	"strings"
)

// Column names of the dataset. The schema is fixed; missing columns are synthesized as empty.
const (
	ColumnCategory = "kategori"
	ColumnKanji    = "kanji"
	ColumnHiragana = "hiragana"
	ColumnKatakana = "katakana"
	ColumnRomaji   = "romaji"
	ColumnIndo     = "indo"
	ColumnEng      = "eng"
	ColumnTipe     = "tipe"
	ColumnCatatan  = "catatan"
)

// Columns lists the dataset columns in their canonical order.
var Columns = []string{
	ColumnCategory,
	ColumnKanji,
	ColumnHiragana,
	ColumnKatakana,
	ColumnRomaji,
	ColumnIndo,
	ColumnEng,
	ColumnTipe,
	ColumnCatatan,
}

// Entry is one row of the dataset. ID is the position of the row in the loaded store.
type Entry struct {
	ID         int      `json:"id" yaml:"id"`
	Category   string   `json:"kategori" yaml:"kategori"`
	Categories []string `json:"categories" yaml:"categories"`
	Kanji      string   `json:"kanji" yaml:"kanji"`
	Hiragana   string   `json:"hiragana" yaml:"hiragana"`
	Katakana   string   `json:"katakana" yaml:"katakana"`
	Romaji     string   `json:"romaji" yaml:"romaji"`
	Indo       string   `json:"indo" yaml:"indo"`
	Eng        string   `json:"eng" yaml:"eng"`
	Tipe       string   `json:"tipe" yaml:"tipe"`
	Catatan    string   `json:"catatan" yaml:"catatan"`
}

// Phonetic returns the hiragana reading, or the katakana one when hiragana is empty.
func (e Entry) Phonetic() string {
	if e.Hiragana != "" {
		return e.Hiragana
	}
	return e.Katakana
}

// DisplayTerm is the form shown for the entry in tables: kanji, then the reading, then romaji.
func (e Entry) DisplayTerm() string {
	if e.Kanji != "" {
		return e.Kanji
	}
	if phonetic := e.Phonetic(); phonetic != "" {
		return phonetic
	}
	return e.Romaji
}

// HasAnyCategory reports whether one of the entry's tags is in selected.
func (e Entry) HasAnyCategory(selected map[string]struct{}) bool {
	for _, category := range e.Categories {
		if _, ok := selected[category]; ok {
			return true
		}
	}
	return false
}

// Field returns the value of a dataset column, or an empty string for unknown columns.
func (e Entry) Field(column string) string {
	switch column {
	case ColumnCategory:
		return e.Category
	case ColumnKanji:
		return e.Kanji
	case ColumnHiragana:
		return e.Hiragana
	case ColumnKatakana:
		return e.Katakana
	case ColumnRomaji:
		return e.Romaji
	case ColumnIndo:
		return e.Indo
	case ColumnEng:
		return e.Eng
	case ColumnTipe:
		return e.Tipe
	case ColumnCatatan:
		return e.Catatan
	}
	return ""
}

// Record returns the entry as a row in Columns order.
func (e Entry) Record() []string {
	record := make([]string, len(Columns))
	for i, column := range Columns {
		record[i] = e.Field(column)
	}
	return record
}

// ParseCategories splits a comma separated category cell into trimmed, non-empty tags.
func ParseCategories(cell string) []string {
	var categories []string
	for _, token := range strings.Split(cell, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		categories = append(categories, token)
	}
	return categories
}
