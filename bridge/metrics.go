// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package bridge

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"
)

var (
	findDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gamebridge_find_duration_seconds",
			Help:    "Duration of game process lookups in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	findTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamebridge_find_total",
			Help: "Total number of game process lookups",
		},
		[]string{"source", "found"},
	)

	matchedProcesses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamebridge_matched_processes_total",
			Help: "Total number of processes matched to a game",
		},
	)

	enumerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gamebridge_enumeration_duration_seconds",
			Help:    "Duration of process table enumeration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	processTableSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gamebridge_process_table_size",
			Help: "Number of records in the most recent process table",
		},
	)

	emptyEnumerations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamebridge_enumeration_empty_total",
			Help: "Enumerations that produced no records, usually because the listing command failed",
		},
	)

	throttledEnumerations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamebridge_enumeration_throttled_total",
			Help: "Enumerations skipped by the rate limiter",
		},
	)

	livenessChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamebridge_liveness_checks_total",
			Help: "Total number of liveness checks",
		},
		[]string{"alive"},
	)

	circuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gamebridge_sdk_circuit_breaker_state",
			Help: "Client circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

func recordFind(source string, matches int, d time.Duration) {
	findDuration.With(prometheus.Labels{"source": source}).Observe(d.Seconds())
	findTotal.With(prometheus.Labels{
		"source": source,
		"found":  strconv.FormatBool(matches > 0),
	}).Inc()
	matchedProcesses.Add(float64(matches))
}

func recordEnumeration(records int, d time.Duration) {
	enumerationDuration.Observe(d.Seconds())
	processTableSize.Set(float64(records))
	if records == 0 {
		emptyEnumerations.Inc()
	}
}

func recordThrottled() {
	throttledEnumerations.Inc()
}

func recordLiveness(alive bool) {
	livenessChecks.With(prometheus.Labels{"alive": strconv.FormatBool(alive)}).Inc()
}

// RecordBreakerState exports a client circuit breaker transition. Its
// signature matches sdk.BreakerConfig.OnStateChange.
func RecordBreakerState(_ string, _, to gobreaker.State) {
	var stateValue float64
	switch to {
	case gobreaker.StateClosed:
		stateValue = 0
	case gobreaker.StateHalfOpen:
		stateValue = 1
	case gobreaker.StateOpen:
		stateValue = 2
	}
	circuitBreakerState.Set(stateValue)
}

// CreateMetricsServer creates a configured HTTP server for Prometheus metrics.
func CreateMetricsServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
