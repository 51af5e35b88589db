// Package metrics exposes Prometheus collectors for the scraper service.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	jobsTotal            *prometheus.CounterVec
	candidatesTotal      *prometheus.CounterVec
	fetchDurationSeconds prometheus.Histogram
	activeJobs           prometheus.Gauge

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		jobsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docscraper_jobs_total",
				Help: "Total number of scrape jobs finished, labeled by terminal status.",
			},
			[]string{"status"},
		)

		candidatesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docscraper_candidates_total",
				Help: "Total number of candidates processed, labeled by document type and outcome.",
			},
			[]string{"type", "outcome"},
		)

		fetchDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docscraper_fetch_duration_seconds",
				Help:    "Histogram of candidate fetch latencies.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15},
			},
		)

		activeJobs = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "docscraper_active_jobs",
				Help: "Number of jobs currently running a pipeline.",
			},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveJob increments the job counter for the given terminal status.
func ObserveJob(status string) {
	if jobsTotal == nil {
		return
	}
	jobsTotal.WithLabelValues(status).Inc()
}

// ObserveCandidate increments the candidate counter.
func ObserveCandidate(docType, outcome string) {
	if candidatesTotal == nil {
		return
	}
	candidatesTotal.WithLabelValues(docType, outcome).Inc()
}

// ObserveFetch records the duration of a candidate fetch.
func ObserveFetch(d time.Duration) {
	if fetchDurationSeconds == nil {
		return
	}
	fetchDurationSeconds.Observe(d.Seconds())
}

// IncActiveJobs increments the active jobs gauge.
func IncActiveJobs() {
	if activeJobs == nil {
		return
	}
	activeJobs.Inc()
}

// DecActiveJobs decrements the active jobs gauge.
func DecActiveJobs() {
	if activeJobs == nil {
		return
	}
	activeJobs.Dec()
}
