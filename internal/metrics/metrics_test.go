package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGenerationCountsAndTimes(t *testing.T) {
	m := New()

	m.ObserveGeneration("gemini", "success", 2*time.Second)
	m.ObserveGeneration("gemini", "success", time.Second)
	m.ObserveGeneration("freepik", "provider_error", 500*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.generations.WithLabelValues("gemini", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.generations.WithLabelValues("freepik", "provider_error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestObserveGenerationEmptyProviderMapsToNone(t *testing.T) {
	m := New()

	m.ObserveGeneration("", "invalid_request", 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.generations.WithLabelValues("none", "invalid_request")))
}

func TestObserveGenerationSkipsHistogramWithoutTiming(t *testing.T) {
	m := New()

	m.ObserveGeneration("gemini", "success", 0)
	m.ObserveGeneration("gemini", "success", -time.Second)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.generations.WithLabelValues("gemini", "success")))
	// No duration series may exist when every observation lacked a timing.
	assert.Zero(t, testutil.CollectAndCount(m.duration))
}
