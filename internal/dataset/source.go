package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"market-report/internal/errors"
)

// Table is a source file read into memory as trimmed strings.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string
	index  map[string]int
}

// ReadTable reads a .csv or .xlsx source. For workbooks only the first sheet
// is read.
func ReadTable(path string) (*Table, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		records, err = readXLSX(path)
	default:
		records, err = readCSVFile(path)
	}
	if err != nil {
		return nil, errors.LoadWrap(err, "read source").WithDetails("%s", path)
	}
	return newTable(path, records)
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCSV(f)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, row)
	}
	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func newTable(path string, records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.Load("source is empty").WithDetails("%s", path)
	}

	header := make([]string, len(records[0]))
	index := make(map[string]int, len(header))
	for i, h := range records[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		header[i] = h
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := make([]string, len(header))
		for i := 0; i < len(row) && i < len(rec); i++ {
			row[i] = strings.TrimSpace(rec[i])
		}
		rows = append(rows, row)
	}

	return &Table{Path: path, Header: header, Rows: rows, index: index}, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Require returns the column indexes for names, failing if any is absent.
func (t *Table) Require(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	var missing []string
	for i, name := range names {
		j, ok := t.index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[i] = j
	}
	if len(missing) > 0 {
		return nil, errors.Load("missing required columns").WithDetails("%s: %s", t.Path, strings.Join(missing, ", "))
	}
	return idx, nil
}

func (t *Table) Float(i, col int) (float64, error) {
	raw := t.Rows[i][col]
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, t.cellError(i, col, err)
	}
	return v, nil
}

// Int parses an integer cell. Integral decimals such as "576851.0", as
// written by spreadsheet exports, are accepted.
func (t *Table) Int(i, col int) (int64, error) {
	raw := t.Rows[i][col]
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, t.cellError(i, col, err)
	}
	if f != float64(int64(f)) {
		return 0, t.cellError(i, col, fmt.Errorf("%q is not an integer", raw))
	}
	return int64(f), nil
}

func (t *Table) cellError(i, col int, err error) error {
	return errors.LoadWrap(err, "malformed cell").WithDetails("%s data row %d column %s", t.Path, i+1, t.Header[col])
}
