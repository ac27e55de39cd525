package vocabulary

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// CSVSource reads a UTF-8 (optionally BOM-prefixed) CSV file with a header row.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Key() string {
	return "csv:" + s.path
}

func (s *CSVSource) Load(ctx context.Context) (*Table, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", s.path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	table, err := readCSV(file)
	if err != nil {
		return nil, fmt.Errorf("readCSV(%s) > %w", s.path, err)
	}
	return table, nil
}

var errNoHeader = errors.New("no header row")

func readCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reader.Read() > %w", err)
	}

	table := &Table{Header: header}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reader.Read() > %w", err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
