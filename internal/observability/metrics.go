package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters of one process. A nil *Metrics ignores every
// update.
type Metrics struct {
	registry     *prometheus.Registry
	rowsLoaded   *prometheus.CounterVec
	rowsSkipped  *prometheus.CounterVec
	phaseSeconds *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "market_report_rows_loaded_total",
			Help: "Rows written to the store, by relation.",
		}, []string{"relation"}),
		rowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "market_report_rows_skipped_total",
			Help: "Rows left out of a report, by report and reason.",
		}, []string{"report", "reason"}),
		phaseSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "market_report_phase_duration_seconds",
			Help: "Duration of the last run of each pipeline phase.",
		}, []string{"phase"}),
	}
	m.registry.MustRegister(m.rowsLoaded, m.rowsSkipped, m.phaseSeconds)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RowsLoaded(relation string, n int) {
	if m == nil {
		return
	}
	m.rowsLoaded.WithLabelValues(relation).Add(float64(n))
}

func (m *Metrics) RowsSkipped(report, reason string, n int) {
	if m == nil {
		return
	}
	m.rowsSkipped.WithLabelValues(report, reason).Add(float64(n))
}

func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	if m == nil {
		return
	}
	m.phaseSeconds.WithLabelValues(phase).Set(d.Seconds())
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
