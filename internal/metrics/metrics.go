// Package metrics records run metrics for the report and insert pipelines
// behind a pluggable Backend. Until the binary installs one with SetBackend,
// every call goes to a backend that discards it.
//
// Backends for concrete systems live in subpackages: prompush (Prometheus
// Pushgateway) and datadog (DogStatsD).
package metrics

import "time"

// Metric names emitted by this package.
const (
	StepTotal    = "ofods_step_total"
	StepDuration = "ofods_step_duration_seconds"
	RowsTotal    = "ofods_rows_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend receives counter increments and duration samples.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)

	// Flush delivers anything buffered; called once before exit.
	Flush() error
}

type discard struct{}

func (discard) IncCounter(string, float64, Labels)       {}
func (discard) ObserveHistogram(string, float64, Labels) {}
func (discard) Flush() error                             { return nil }

var backend Backend = discard{}

// SetBackend installs b. A nil b is ignored.
func SetBackend(b Backend) {
	if b != nil {
		backend = b
	}
}

// Flush flushes the installed backend.
func Flush() error { return backend.Flush() }

// StartStep starts timing a pipeline step (a report query, a table load, a
// file write). The returned func records its outcome and duration.
func StartStep(job, step string) func(err error) {
	start := time.Now()
	return func(err error) {
		RecordStep(job, step, err, time.Since(start))
	}
}

// RecordStep records one finished step as a count and a duration, both
// labelled with its status.
func RecordStep(job, step string, err error, d time.Duration) {
	lbls := Labels{"job": job, "step": step, "status": "success"}
	if err != nil {
		lbls["status"] = "failure"
	}
	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDuration, d.Seconds(), lbls)
}

// RecordRows counts rows of a kind for one table or report section, e.g.
// kind "statements" for a seeded table or "report_rows" for a section.
// Non-positive counts are dropped.
func RecordRows(job, kind, table string, n int64) {
	if n <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(n), Labels{"job": job, "kind": kind, "table": table})
}
