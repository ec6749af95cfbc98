package upstream

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for outbound provider calls.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the upstream collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_requests_total",
				Help: "Total number of requests forwarded to the weather provider.",
			},
			[]string{"kind", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "upstream_request_duration_seconds",
				Help:    "Latency of requests forwarded to the weather provider.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
	}

	if err := reg.Register(m.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// observe is a no-op on a nil receiver so the client works without metrics.
func (m *Metrics) observe(kind Kind, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(string(kind), status).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(d.Seconds())
}
