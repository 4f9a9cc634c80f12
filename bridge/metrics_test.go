// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package bridge

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// value reads the current value of a gauge or counter.
func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	if out.Gauge != nil {
		return out.Gauge.GetValue()
	}
	return out.Counter.GetValue()
}

func TestRecordBreakerState(t *testing.T) {
	RecordBreakerState("sdk", gobreaker.StateClosed, gobreaker.StateOpen)
	assert.Equal(t, 2.0, value(t, circuitBreakerState))

	RecordBreakerState("sdk", gobreaker.StateOpen, gobreaker.StateHalfOpen)
	assert.Equal(t, 1.0, value(t, circuitBreakerState))

	RecordBreakerState("sdk", gobreaker.StateHalfOpen, gobreaker.StateClosed)
	assert.Equal(t, 0.0, value(t, circuitBreakerState))
}

func TestRecordEnumeration(t *testing.T) {
	before := value(t, emptyEnumerations)

	recordEnumeration(12, 5*time.Millisecond)
	assert.Equal(t, 12.0, value(t, processTableSize))
	assert.Equal(t, before, value(t, emptyEnumerations))

	recordEnumeration(0, time.Millisecond)
	assert.Equal(t, before+1, value(t, emptyEnumerations))
}

func TestRecordLiveness(t *testing.T) {
	before := value(t, livenessChecks.WithLabelValues("false"))
	recordLiveness(false)
	assert.Equal(t, before+1, value(t, livenessChecks.WithLabelValues("false")))
}

func TestCreateMetricsServer(t *testing.T) {
	server := CreateMetricsServer(9191)
	assert.Equal(t, ":9191", server.Addr)
	assert.Equal(t, 10*time.Second, server.ReadTimeout)

	recordFind("scan", 2, time.Millisecond)

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "gamebridge_find_total"))

	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
