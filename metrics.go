package subbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects statistics about break attempts.
type Metrics struct {
	rounds         prometheus.Counter
	keys           prometheus.Counter
	consolidations prometheus.Counter
	duration       prometheus.Histogram
}

// NewMetrics creates the break metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subbreaker_rounds_total",
			Help: "Number of hill climbing rounds performed",
		}),
		keys: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subbreaker_keys_evaluated_total",
			Help: "Number of candidate keys evaluated",
		}),
		consolidations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subbreaker_consolidations_total",
			Help: "Number of break attempts stopped by consolidation",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "subbreaker_break_duration_seconds",
			Help:    "Duration of break attempts",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
	}
	for _, c := range []prometheus.Collector{m.rounds, m.keys, m.consolidations, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(res *Result) {
	if m == nil {
		return
	}
	m.rounds.Add(float64(res.NbrRounds))
	m.keys.Add(float64(res.NbrKeys))
	if res.Consolidated {
		m.consolidations.Inc()
	}
	m.duration.Observe(res.Elapsed.Seconds())
}
