// Package metrics records load and query outcomes as Prometheus metrics in a
// private registry and writes them to a text exposition file.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "querydesk"

// Result label values
const (
	resultOK    = "ok"
	resultError = "error"
)

// Recorder implements querydesk.Recorder.
type Recorder struct {
	registry      *prometheus.Registry
	loadsTotal    *prometheus.CounterVec
	loadedRows    *prometheus.CounterVec
	queriesTotal  *prometheus.CounterVec
	resultRows    *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	loadDuration  *prometheus.HistogramVec
}

// NewRecorder returns a Recorder registered on its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "loads_total",
				Help:      "Total number of file loads by result.",
			},
			[]string{"engine", "result"},
		),
		loadedRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "loaded_rows_total",
				Help:      "Total number of data rows read by successful loads.",
			},
			[]string{"engine"},
		),
		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Total number of query executions by result.",
			},
			[]string{"engine", "result"},
		),
		resultRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "result_rows_total",
				Help:      "Total number of rows returned by successful queries.",
			},
			[]string{"engine"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_ms",
				Help:      "Query execution latency in milliseconds, engine startup included.",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
			},
			[]string{"engine"},
		),
		loadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "load_duration_ms",
				Help:      "File load latency in milliseconds.",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
			},
			[]string{"engine"},
		),
	}
	r.registry.MustRegister(
		r.loadsTotal,
		r.loadedRows,
		r.queriesTotal,
		r.resultRows,
		r.queryDuration,
		r.loadDuration,
	)
	return r
}

// Registry exposes the registry the metrics live in
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveLoad records one file load
func (r *Recorder) ObserveLoad(engine string, ok bool, rows int, elapsed time.Duration) {
	r.loadsTotal.WithLabelValues(engine, result(ok)).Inc()
	if ok && rows > 0 {
		r.loadedRows.WithLabelValues(engine).Add(float64(rows))
	}
	r.loadDuration.WithLabelValues(engine).Observe(float64(elapsed.Milliseconds()))
}

// ObserveQuery records one query execution
func (r *Recorder) ObserveQuery(engine string, ok bool, rows int, elapsed time.Duration) {
	r.queriesTotal.WithLabelValues(engine, result(ok)).Inc()
	if ok && rows > 0 {
		r.resultRows.WithLabelValues(engine).Add(float64(rows))
	}
	r.queryDuration.WithLabelValues(engine).Observe(float64(elapsed.Milliseconds()))
}

// WriteFile writes every metric to path in the Prometheus text format.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

func result(ok bool) string {
	if ok {
		return resultOK
	}
	return resultError
}
