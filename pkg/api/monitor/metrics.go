package monitor

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/calc"
)

// Appraisal pipeline metrics
var (
	// AppraisalsTotal counts appraisal runs by status (ok/error)
	AppraisalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appraisals_total",
			Help: "Total appraisal runs by status",
		},
		[]string{"status"},
	)

	// AppraisalDuration tracks appraisal computation latency in seconds
	AppraisalDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "appraisal_duration_seconds",
			Help:    "Appraisal computation duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)

	// CacheLookups counts appraisal cache lookups by result (hit/miss)
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appraisal_cache_lookups_total",
			Help: "Appraisal cache lookups by result",
		},
		[]string{"result"},
	)

	// CalcDiagnostics counts numeric edge cases reported by the
	// calculation engine, labelled by the component that reported
	CalcDiagnostics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calc_diagnostics_total",
			Help: "Numeric edge cases reported by the calculation engine, by component",
		},
		[]string{"component"},
	)

	// AdvisorRequests counts advisor commentary requests by outcome
	// (generated/fallback)
	AdvisorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_requests_total",
			Help: "Advisor commentary requests by outcome",
		},
		[]string{"outcome"},
	)
)

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// InstallDiagnostics routes calc edge-case reports into CalcDiagnostics
// and the server log.
func InstallDiagnostics() {
	calc.Diagnostic = func(component, message string) {
		CalcDiagnostics.WithLabelValues(component).Inc()
		fmt.Printf("[CALC] %s: %s\n", component, message)
	}
}
