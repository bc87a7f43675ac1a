package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSVParser reads a response archive exported as CSV.
type CSVParser struct{}

func (p *CSVParser) Extensions() []string { return []string{".csv"} }

func (p *CSVParser) Parse(path string) (*Responses, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}
	return NewResponses(filepath.Base(path), records[0], records[1:]), nil
}
