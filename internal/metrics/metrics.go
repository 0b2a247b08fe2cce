// Package metrics records extraction outcomes with Prometheus collectors.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "htmldate"

// Collector counts found dates by source, misses and rejected documents,
// and times each search. A nil *Collector records nothing.
type Collector struct {
	found    *prometheus.CounterVec
	notFound prometheus.Counter
	rejected *prometheus.CounterVec
	duration prometheus.Histogram
}

// New creates a collector and registers it with reg. Registering twice on the
// same registry reuses the collectors already there, so several finders can
// share one registry.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		found: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "dates_found_total",
			Help:      "Dates found, by the detector that produced them",
		}, []string{"source"}),
		notFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "dates_not_found_total",
			Help:      "Documents searched without finding a date",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "documents_rejected_total",
			Help:      "Documents rejected before the search, by reason",
		}, []string{"reason"}), // reason: size, parse, empty
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Time spent searching one document",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		}),
	}

	var err error
	if c.found, err = register(reg, c.found); err != nil {
		return nil, err
	}
	if c.notFound, err = register(reg, c.notFound); err != nil {
		return nil, err
	}
	if c.rejected, err = register(reg, c.rejected); err != nil {
		return nil, err
	}
	if c.duration, err = register(reg, c.duration); err != nil {
		return nil, err
	}
	return c, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	if err := reg.Register(col); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return col, err
	}
	return col, nil
}

// ObserveFound records a date produced by source.
func (c *Collector) ObserveFound(source string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.found.WithLabelValues(source).Inc()
	c.duration.Observe(elapsed.Seconds())
}

// ObserveNotFound records a search that came back empty.
func (c *Collector) ObserveNotFound(elapsed time.Duration) {
	if c == nil {
		return
	}
	c.notFound.Inc()
	c.duration.Observe(elapsed.Seconds())
}

// ObserveRejected records a document turned away before the search.
func (c *Collector) ObserveRejected(reason string) {
	if c == nil {
		return
	}
	c.rejected.WithLabelValues(reason).Inc()
}
