package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ThrottledRequests *prometheus.CounterVec
	SweptBuckets      prometheus.Gauge
}

// New registers the rate limit metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ThrottledRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "phishshield_ratelimit_throttled_total",
			Help: "Requests rejected with 429 by endpoint group",
		}, []string{"group"}),
		SweptBuckets: factory.NewGauge(prometheus.GaugeOpts{
			Name: "phishshield_ratelimit_buckets_swept",
			Help: "Idle rate limit buckets removed by the last sweep",
		}),
	}
}

func (m *Metrics) IncrementThrottled(group string) {
	if m != nil {
		m.ThrottledRequests.WithLabelValues(group).Inc()
	}
}

func (m *Metrics) SetSwept(count int) {
	if m != nil {
		m.SweptBuckets.Set(float64(count))
	}
}
