package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what a run converted and rendered. Each instance owns its
// registry so one process can run several independent jobs.
type Metrics struct {
	registry *prometheus.Registry

	RecordsAccepted prometheus.Counter
	RecordsRejected prometheus.Counter
	Conversions     prometheus.Counter
	RecordsIngested prometheus.Counter
	RecordsSkipped  prometheus.Counter
	UnitsRendered   prometheus.Counter
}

// New creates a new Metrics instance with all run metrics registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		RecordsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "lealogineo_roster_records_accepted_total",
			Help: "Roster rows accepted into the import table",
		}),
		RecordsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "lealogineo_roster_records_rejected_total",
			Help: "Roster rows written to the rejected table",
		}),
		Conversions: factory.NewCounter(prometheus.CounterOpts{
			Name: "lealogineo_roster_conversions_total",
			Help: "Completed roster conversions",
		}),
		RecordsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "lealogineo_letters_records_ingested_total",
			Help: "Credential records read for letter generation",
		}),
		RecordsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "lealogineo_letters_records_skipped_total",
			Help: "Credential rows skipped for a missing password",
		}),
		UnitsRendered: factory.NewCounter(prometheus.CounterOpts{
			Name: "lealogineo_letters_units_rendered_total",
			Help: "Letter documents rendered",
		}),
	}
}

// ObserveConversion records the outcome of one roster conversion.
func (m *Metrics) ObserveConversion(accepted, rejected int) {
	m.Conversions.Inc()
	m.RecordsAccepted.Add(float64(accepted))
	m.RecordsRejected.Add(float64(rejected))
}

// ObserveLetters records the outcome of one letter run.
func (m *Metrics) ObserveLetters(ingested, skipped, rendered int) {
	m.RecordsIngested.Add(float64(ingested))
	m.RecordsSkipped.Add(float64(skipped))
	m.UnitsRendered.Add(float64(rendered))
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format for the
// node exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
