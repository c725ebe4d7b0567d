package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"market-report/internal/analytics"
)

var titles = map[string]string{
	"classification": "Brand Market Classification",
	"efficiency":     "State Per-Capita Efficiency (Independents)",
	"summary":        "Executive Summary by Segment",
}

// Print writes the three reports as aligned text tables. The classification
// and efficiency tables show at most limit rows; zero shows all. Each table
// is followed by its skipped-row counts.
func Print(w io.Writer, r *analytics.Reports, limit int) error {
	for i, t := range tables(r) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := printTable(w, t, limit, r.Skipped.CountsFor(t.report)); err != nil {
			return err
		}
	}
	return nil
}

func printTable(w io.Writer, t table, limit int, skips []analytics.SkipCount) error {
	if _, err := fmt.Fprintf(w, "== %s ==\n", titles[t.name]); err != nil {
		return err
	}

	rows := t.rows
	if t.limited && limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.header, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = displayCell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(t.rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
	} else if hidden := len(t.rows) - len(rows); hidden > 0 {
		fmt.Fprintf(w, "... %d more rows\n", hidden)
	}
	for _, s := range skips {
		fmt.Fprintln(w, s.String())
	}
	return nil
}
