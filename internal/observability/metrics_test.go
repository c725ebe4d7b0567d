package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.RowsLoaded("top250", 5)
	m.RowsLoaded("top250", 5)
	m.RowsSkipped("classification", "zero Units", 1)
	m.ObservePhase("load", 1500*time.Millisecond)

	if got := testutil.ToFloat64(m.rowsLoaded.WithLabelValues("top250")); got != 10 {
		t.Errorf("rows loaded = %v, want 10", got)
	}
	if got := testutil.ToFloat64(m.rowsSkipped.WithLabelValues("classification", "zero Units")); got != 1 {
		t.Errorf("rows skipped = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.phaseSeconds.WithLabelValues("load")); got != 1.5 {
		t.Errorf("phase seconds = %v, want 1.5", got)
	}
	if n := testutil.CollectAndCount(m.rowsLoaded); n != 1 {
		t.Errorf("rows loaded series = %d, want 1", n)
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.RowsLoaded("state_population", 5)

	path := filepath.Join(t.TempDir(), "market_report.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile(): %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `market_report_rows_loaded_total{relation="state_population"} 5`
	if !strings.Contains(string(data), want) {
		t.Errorf("textfile missing %q:\n%s", want, data)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RowsLoaded("top250", 1)
	m.RowsSkipped("summary", "x", 1)
	m.ObservePhase("read", time.Second)
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Errorf("nil WriteTextfile() = %v", err)
	}
	if m.Registry() != nil {
		t.Error("nil Registry() should be nil")
	}
}
