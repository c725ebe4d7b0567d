package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"market-report/internal/analytics"
	"market-report/internal/errors"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"

	WorkbookName = "market_report.xlsx"
)

// Export writes the reports to dir in each of formats and returns the paths
// written, in order. CSV and JSON produce one file per report; XLSX produces
// a single workbook with a sheet per report.
func Export(dir string, formats []string, r *analytics.Reports) ([]string, error) {
	if len(formats) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.ExportWrap(err, "create export directory").WithDetails("%s", dir)
	}

	var written []string
	for _, format := range formats {
		var (
			paths []string
			err   error
		)
		switch format {
		case FormatCSV:
			paths, err = exportCSV(dir, r)
		case FormatJSON:
			paths, err = exportJSON(dir, r)
		case FormatXLSX:
			var path string
			path, err = exportXLSX(dir, r)
			paths = []string{path}
		default:
			err = fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			return written, errors.ExportWrap(err, "export reports").WithDetails("format %s", format)
		}
		written = append(written, paths...)
	}
	return written, nil
}

func exportCSV(dir string, r *analytics.Reports) ([]string, error) {
	var paths []string
	for _, t := range tables(r) {
		path := filepath.Join(dir, t.name+".csv")
		if err := writeCSV(path, t); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSV(path string, t table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.header); err != nil {
		return err
	}
	for _, row := range t.rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportJSON(dir string, r *analytics.Reports) ([]string, error) {
	payloads := []struct {
		name string
		v    interface{}
	}{
		{"classification", r.Classification},
		{"efficiency", r.Efficiency},
		{"summary", r.Summary},
	}

	var paths []string
	for _, p := range payloads {
		data, err := json.MarshalIndent(p.v, "", "  ")
		if err != nil {
			return paths, fmt.Errorf("marshal %s: %w", p.name, err)
		}
		path := filepath.Join(dir, p.name+".json")
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func exportXLSX(dir string, r *analytics.Reports) (string, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	defaultSheet := wb.GetSheetName(0)
	for _, t := range tables(r) {
		if _, err := wb.NewSheet(t.name); err != nil {
			return "", err
		}
		if err := writeSheet(wb, t); err != nil {
			return "", fmt.Errorf("sheet %s: %w", t.name, err)
		}
	}
	if err := wb.DeleteSheet(defaultSheet); err != nil {
		return "", err
	}
	wb.SetActiveSheet(0)

	path := filepath.Join(dir, WorkbookName)
	if err := wb.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func writeSheet(wb *excelize.File, t table) error {
	header := make([]interface{}, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	if err := wb.SetSheetRow(t.name, "A1", &header); err != nil {
		return err
	}
	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := wb.SetSheetRow(t.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
