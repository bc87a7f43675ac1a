package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// CSVStore keeps each table as one CSV file (<dir>/<table>.csv). A single
// mutex serializes all operations so an append is atomic with respect to the
// reads that precede it in the same process.
type CSVStore struct {
	dir string
	mu  sync.Mutex
}

// NewCSVStore creates a store rooted at dir, creating dir if needed.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}
	return &CSVStore{dir: dir}, nil
}

func (s *CSVStore) path(table string) string {
	return filepath.Join(s.dir, table+".csv")
}

// Exists reports whether a table file is present.
func (s *CSVStore) Exists(table string) bool {
	_, err := os.Stat(s.path(table))
	return err == nil
}

// Read returns a table's header and data rows.
func (s *CSVStore) Read(table string) ([]string, [][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(table)
}

func (s *CSVStore) readLocked(table string) ([]string, [][]string, error) {
	f, err := os.Open(s.path(table))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
		}
		return nil, nil, fmt.Errorf("opening table %s: %w", table, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading table %s: %w", table, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("table %s has no header", table)
	}
	return records[0], records[1:], nil
}

// Append adds one data row and returns its 1-based row number (header is
// row 1).
func (s *CSVStore) Append(table string, row []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, rows, err := s.readLocked(table)
	if err != nil {
		return 0, err
	}
	if len(row) != len(header) {
		return 0, fmt.Errorf("table %s: expected %d fields, got %d", table, len(header), len(row))
	}

	f, err := os.OpenFile(s.path(table), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, fmt.Errorf("opening table %s: %w", table, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(row); err != nil {
		return 0, fmt.Errorf("appending to table %s: %w", table, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("appending to table %s: %w", table, err)
	}

	return len(rows) + 2, nil
}

// UpdateCell overwrites a single cell and rewrites the table file.
func (s *CSVStore) UpdateCell(table string, rowNum, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, rows, err := s.readLocked(table)
	if err != nil {
		return err
	}

	idx := rowNum - 2
	if idx < 0 || idx >= len(rows) {
		return fmt.Errorf("table %s: row %d out of range", table, rowNum)
	}
	if col < 0 || col >= len(header) {
		return fmt.Errorf("table %s: column %d out of range", table, col)
	}
	rows[idx][col] = value

	return s.writeLocked(table, header, rows)
}

// Create makes an empty table with the given header.
func (s *CSVStore) Create(table string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(table)); err == nil {
		return fmt.Errorf("table %s already exists", table)
	}
	return s.writeLocked(table, header, nil)
}

func (s *CSVStore) writeLocked(table string, header []string, rows [][]string) error {
	f, err := os.Create(s.path(table))
	if err != nil {
		return fmt.Errorf("writing table %s: %w", table, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing table %s header: %w", table, err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing table %s row %d: %w", table, i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
