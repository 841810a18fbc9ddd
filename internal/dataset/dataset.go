// Package dataset loads tabular molecule data from CSV and spreadsheet
// files into a uniform in-memory table.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sentinel errors for dataset loading and column lookup.
var (
	ErrDatasetOpen   = errors.New("failed to open dataset")
	ErrDatasetRead   = errors.New("failed to read dataset")
	ErrEmptyDataset  = errors.New("dataset has no header row")
	ErrColumnMissing = errors.New("column not found in dataset")
)

// Table holds tabular data with a named header row. Rows are normalized
// to the header width at load time; missing trailing cells hold "".
type Table struct {
	Header []string
	Rows   [][]string
}

// Read loads the file at path, picking the reader by extension.
// Files ending in .xlsx or .xlsm are read as spreadsheets, everything
// else as CSV.
func Read(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path)
	default:
		return ReadCSV(path)
	}
}

// ReadCSV reads a comma-separated file with a header row.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path) // #nosec G304 -- dataset path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetOpen, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetRead, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, path)
	}

	header := records[0]
	if len(header) > 0 {
		// Spreadsheet exports commonly prefix the first header cell
		// with a UTF-8 byte order mark.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return newTable(header, records[1:])
}

// ReadXLSX reads the first sheet of a spreadsheet file.
func ReadXLSX(path string) (*Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetOpen, err)
	}
	defer func() { _ = file.Close() }()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s has no sheets", ErrEmptyDataset, path)
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetRead, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, path)
	}
	return newTable(rows[0], rows[1:])
}

// newTable normalizes row widths against the header. Short rows are
// padded with empty cells; the spreadsheet reader drops trailing empty
// cells and lenient CSV parsing permits ragged input.
func newTable(header []string, rows [][]string) (*Table, error) {
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d",
				ErrDatasetRead, i+2, len(row), len(header))
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows[i] = row
	}
	return &Table{Header: header, Rows: rows}, nil
}

// Columns returns the header names.
func (t *Table) Columns() []string { return t.Header }

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// Require fails with ErrColumnMissing naming the first absent column.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if _, ok := t.Column(name); !ok {
			return fmt.Errorf("%w: %q (have: %s)",
				ErrColumnMissing, name, strings.Join(t.Header, ", "))
		}
	}
	return nil
}

// SortBy stably reorders rows by the named column. The ordering is
// numeric when every non-empty cell in the column parses as a number,
// lexicographic otherwise. Empty cells order last either way.
func (t *Table) SortBy(name string) error {
	col, ok := t.Column(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrColumnMissing, name)
	}

	numeric := true
	for _, row := range t.Rows {
		if row[col] == "" {
			continue
		}
		if _, err := strconv.ParseFloat(row[col], 64); err != nil {
			numeric = false
			break
		}
	}

	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, b := t.Rows[i][col], t.Rows[j][col]
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		if numeric {
			fa, _ := strconv.ParseFloat(a, 64)
			fb, _ := strconv.ParseFloat(b, 64)
			return fa < fb
		}
		return a < b
	})
	return nil
}

// Slice returns a view of rows [start, end) sharing the backing data.
func (t *Table) Slice(start, end int) *Table {
	return &Table{Header: t.Header, Rows: t.Rows[start:end]}
}
