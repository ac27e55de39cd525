package vocabulary

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DBSource reads the dataset from a table whose columns are named like the CSV header
// plus an integer id column giving the row order.
type DBSource struct {
	db    *sqlx.DB
	table string
}

func NewDBSource(db *sqlx.DB, table string) (*DBSource, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &DBSource{db: db, table: table}, nil
}

func (s *DBSource) Key() string {
	return "mysql:" + s.table
}

type vocabularyRow struct {
	Kategori sql.NullString `db:"kategori"`
	Kanji    sql.NullString `db:"kanji"`
	Hiragana sql.NullString `db:"hiragana"`
	Katakana sql.NullString `db:"katakana"`
	Romaji   sql.NullString `db:"romaji"`
	Indo     sql.NullString `db:"indo"`
	Eng      sql.NullString `db:"eng"`
	Tipe     sql.NullString `db:"tipe"`
	Catatan  sql.NullString `db:"catatan"`
}

func (s *DBSource) Load(ctx context.Context) (*Table, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(Columns, ", "), s.table)

	var rows []vocabularyRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("db.SelectContext(%s) > %w", s.table, err)
	}

	table := &Table{
		Header: Columns,
		Rows:   make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		// NULL cells become empty strings through NullString.String
		table.Rows = append(table.Rows, []string{
			row.Kategori.String,
			row.Kanji.String,
			row.Hiragana.String,
			row.Katakana.String,
			row.Romaji.String,
			row.Indo.String,
			row.Eng.String,
			row.Tipe.String,
			row.Catatan.String,
		})
	}
	return table, nil
}
