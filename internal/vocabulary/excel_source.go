package vocabulary

import (
	"context"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"
)

// ExcelSource reads one sheet of an .xlsx workbook. The first row is the header.
type ExcelSource struct {
	path  string
	sheet string
}

// NewExcelSource creates a source for the sheet. An empty sheet name selects the first sheet.
func NewExcelSource(path, sheet string) *ExcelSource {
	return &ExcelSource{path: path, sheet: sheet}
}

func (s *ExcelSource) Key() string {
	return "xlsx:" + s.path + "#" + s.sheet
}

func (s *ExcelSource) Load(ctx context.Context) (*Table, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile(%s) > %w", s.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in %s", s.path)
	}
	sheet := sheets[0]
	if s.sheet != "" {
		if !slices.Contains(sheets, s.sheet) {
			return nil, fmt.Errorf("sheet %q not found in %s", s.sheet, s.path)
		}
		sheet = s.sheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("f.GetRows(%s) > %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s > %w", sheet, errNoHeader)
	}
	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}
