package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Recording(t *testing.T) {
	registry := prometheus.NewRegistry()
	c, err := New(registry)
	require.NoError(t, err)

	c.ObserveFound("header", 2*time.Millisecond)
	c.ObserveFound("header", time.Millisecond)
	c.ObserveFound("url", time.Millisecond)
	c.ObserveNotFound(5 * time.Millisecond)
	c.ObserveRejected("size")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.found.WithLabelValues("header")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.found.WithLabelValues("url")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.notFound))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rejected.WithLabelValues("size")))

	expected := `
# HELP htmldate_dates_not_found_total Documents searched without finding a date
# TYPE htmldate_dates_not_found_total counter
htmldate_dates_not_found_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "htmldate_dates_not_found_total"))
}

func TestCollector_SharedRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	first, err := New(registry)
	require.NoError(t, err)
	second, err := New(registry)
	require.NoError(t, err)

	first.ObserveNotFound(time.Millisecond)
	second.ObserveNotFound(time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(first.notFound))
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveFound("url", time.Millisecond)
		c.ObserveNotFound(time.Millisecond)
		c.ObserveRejected("parse")
	})
}
