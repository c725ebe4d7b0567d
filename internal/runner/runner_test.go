package runner

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"market-report/internal/analytics"
	"market-report/internal/database"
	"market-report/internal/dataset"
	"market-report/internal/errors"
	"market-report/internal/observability"
)

const (
	brandsCSV = `Rank,Restaurant,Content,Sales,YOY_Sales,Units,YOY_Units,Headquarters,Segment_Category
1,McDonald's,,40412,4.9%,13846,-0.5%,,Quick Service & Burger
2,Texas Roadhouse,,3461,12.1%,611,5.0%,,Steak
3,Chick-fil-A,,11320,13.0%,2470,5.0%,,Chicken
4,Pizza Hut,,5380,-3.0%,6561,-0.4%,,Pizza
5,Ghost Kitchen,,100,5%,0,0%,,Pizza
`
	independentsCSV = `Rank,Restaurant,Sales,Average Check,City,State,Meals Served
1,Carmine's (Times Square),39080335,40,New York,N.Y.,469803
2,The Boathouse Orlando,35218364,43,Orlando,Fla.,820819
3,Old Ebbitt Grill,29104017,33,Washington,D.C.,892830
4,LAVO Italian Restaurant & Nightclub,26916180,90,New York,N.Y.,198500
5,Bryant Park Grill & Cafe,26900000,45,New York,N.Y.,536200
6,Gibsons Bar & Steakhouse,25100000,70,Chicago,Ill.,358500
`
	populationCSV = `rank,state,state_code,2020_census,percent_of_total
1,California,CA,39538223,0.1191
2,Texas,TX,29145505,0.0874
3,Florida,FL,21538187,0.0647
4,New York,NY,20201249,0.0607
5,Illinois,IL,12812508,0.0383
`
)

func writeSources(tb testing.TB, brands string) dataset.Sources {
	tb.Helper()
	dir := tb.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			tb.Fatal(err)
		}
		return path
	}
	return dataset.Sources{
		Brands:       write("Top250.csv", brands),
		Independents: write("Independence100.csv", independentsCSV),
		Population:   write("us_pop_by_state_2020.csv", populationCSV),
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(tb testing.TB) database.DatabaseDriver {
	tb.Helper()
	db := &database.SQLiteDriver{}
	if err := db.Connect(""); err != nil {
		tb.Fatalf("Connect(): %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRun(t *testing.T) {
	db := newStore(t)
	metrics := observability.NewMetrics()
	loader := dataset.NewLoader(writeSources(t, brandsCSV), quietLogger())

	result, err := Run(context.Background(), db, loader, Options{
		RunID:      "run-1",
		Driver:     "sqlite",
		Iterations: 3,
		Logger:     quietLogger(),
		Metrics:    metrics,
	})
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}

	if result.RunID != "run-1" || result.Iterations != 3 {
		t.Errorf("RunID/Iterations = %s/%d", result.RunID, result.Iterations)
	}
	if !result.DataIntegrity {
		t.Error("repeated loads of the same sources should keep data integrity")
	}
	if result.Rows[dataset.BrandsRelation] != 5 || result.Rows[dataset.IndependentsRelation] != 6 || result.Rows[dataset.PopulationRelation] != 5 {
		t.Errorf("Rows = %v", result.Rows)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if result.TotalTime <= 0 || result.P99Latency < result.P95Latency {
		t.Errorf("latencies = total %v p95 %v p99 %v", result.TotalTime, result.P95Latency, result.P99Latency)
	}

	eff := result.Reports.Efficiency
	want := []analytics.StateEfficiency{
		{StateName: "New York", Population: 20201249, TotalSales: 92896515, DollarsPerPerson: 4.60},
		{StateName: "Illinois", Population: 12812508, TotalSales: 25100000, DollarsPerPerson: 1.96},
		{StateName: "Florida", Population: 21538187, TotalSales: 35218364, DollarsPerPerson: 1.64},
	}
	if len(eff) != len(want) {
		t.Fatalf("Efficiency = %+v", eff)
	}
	for i := range want {
		if eff[i] != want[i] {
			t.Errorf("Efficiency[%d] = %+v, want %+v", i, eff[i], want[i])
		}
	}

	if got := len(result.Reports.Classification); got != 3 {
		t.Errorf("classified %d brands, want 3", got)
	}

	series := map[string]int{
		"market_report_rows_loaded_total":      3,
		"market_report_rows_skipped_total":     1,
		"market_report_phase_duration_seconds": 3,
	}
	for name, want := range series {
		n, err := testutil.GatherAndCount(metrics.Registry(), name)
		if err != nil {
			t.Fatal(err)
		}
		if n != want {
			t.Errorf("%s series = %d, want %d", name, n, want)
		}
	}
}

func TestRun_GeneratesRunID(t *testing.T) {
	loader := dataset.NewLoader(writeSources(t, brandsCSV), quietLogger())
	result, err := Run(context.Background(), newStore(t), loader, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}
	if len(result.RunID) != 36 || result.Iterations != 1 {
		t.Errorf("RunID = %q, Iterations = %d", result.RunID, result.Iterations)
	}
}

func TestRun_MalformedSourceIsFatal(t *testing.T) {
	bad := "Restaurant,Sales\nA,1\n"
	loader := dataset.NewLoader(writeSources(t, bad), quietLogger())
	result, err := Run(context.Background(), newStore(t), loader, Options{Logger: quietLogger()})
	if !errors.HasCode(err, errors.CodeLoad) {
		t.Errorf("Run() error = %v, want LOAD_ERROR", err)
	}
	if result != nil {
		t.Error("a failed run should not return a result")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loader := dataset.NewLoader(writeSources(t, brandsCSV), quietLogger())
	if _, err := Run(ctx, newStore(t), loader, Options{Logger: quietLogger()}); err == nil {
		t.Error("Run() with a cancelled context should fail")
	}
}

// shrinkingStore drops a population row on the second read to simulate a
// store that does not hold what was loaded.
type shrinkingStore struct {
	database.DatabaseDriver
	reads int
}

func (s *shrinkingStore) ReadRelation(ctx context.Context, rel database.Relation) ([]database.Tuple, error) {
	rows, err := s.DatabaseDriver.ReadRelation(ctx, rel)
	if err != nil || rel.Name != dataset.PopulationRelation {
		return rows, err
	}
	s.reads++
	if s.reads == 2 && len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}

func TestRun_DetectsChangedContent(t *testing.T) {
	db := &shrinkingStore{DatabaseDriver: newStore(t)}
	loader := dataset.NewLoader(writeSources(t, brandsCSV), quietLogger())
	result, err := Run(context.Background(), db, loader, Options{Iterations: 2, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}
	if result.DataIntegrity {
		t.Error("DataIntegrity should be false when relation content differs")
	}
}

func TestSameFingerprints(t *testing.T) {
	a := map[string]uint64{"x": 1, "y": 2}
	if !sameFingerprints(a, map[string]uint64{"y": 2, "x": 1}) {
		t.Error("equal maps should match")
	}
	if sameFingerprints(a, map[string]uint64{"x": 1}) || sameFingerprints(a, map[string]uint64{"x": 1, "y": 3}) {
		t.Error("different maps should not match")
	}
}
