package importer

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the first sheet of a spreadsheet export. Rows shorter
// than the header are common in spreadsheet exports and are passed through
// as-is.
type XLSXParser struct{}

func (p *XLSXParser) Extensions() []string { return []string{".xlsx"} }

func (p *XLSXParser) Parse(path string) (*Responses, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s sheet %s: %w", path, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}
	return NewResponses(filepath.Base(path), rows[0], rows[1:]), nil
}
