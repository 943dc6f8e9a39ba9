package features

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts simulation work. A nil *Metrics records nothing.
type Metrics struct {
	images      prometheus.Counter
	failures    prometheus.Counter
	generations prometheus.Counter
	values      prometheus.Histogram
}

// NewMetrics registers the extractor metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		images: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "mnistca",
			Name:      "images_simulated_total",
			Help:      "Images driven through the automaton to completion.",
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "mnistca",
			Name:      "image_failures_total",
			Help:      "Images whose simulation returned an error.",
		}),
		generations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "mnistca",
			Name:      "generations_total",
			Help:      "Automaton generations committed.",
		}),
		values: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mnistca",
			Name:      "feature_value",
			Help:      "Distribution of per-image feature values.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}
}

func (m *Metrics) observe(generations int, value float64) {
	if m == nil {
		return
	}
	m.images.Inc()
	m.generations.Add(float64(generations))
	m.values.Observe(value)
}

func (m *Metrics) fail() {
	if m == nil {
		return
	}
	m.failures.Inc()
}
