package simulate

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics for scenario replays.
type Metrics struct {
	operationsTotal *prometheus.CounterVec
	amountOut       *prometheus.HistogramVec
	utility         prometheus.Gauge
	totalSupply     prometheus.Gauge
}

// NewMetrics creates and registers the simulator metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conicpool_operations_total",
			Help: "Total number of pool operations, labeled by operation, token and result.",
		}, []string{"op", "token", "result"}),
		amountOut: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "conicpool_operation_result_amount",
			Help:    "Amount returned by successful pool operations.",
			Buckets: prometheus.ExponentialBuckets(0.01, 10, 10),
		}, []string{"op", "token"}),
		utility: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "conicpool_utility",
			Help: "Curve utility of the pool reserves after the last operation.",
		}),
		totalSupply: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "conicpool_total_supply",
			Help: "Outstanding LP shares after the last operation.",
		}),
	}
	reg.MustRegister(m.operationsTotal, m.amountOut, m.utility, m.totalSupply)
	return m
}

func (m *Metrics) observe(op, token string, result, utility, totalSupply float64, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.operationsTotal.WithLabelValues(op, token, "error").Inc()
		return
	}
	m.operationsTotal.WithLabelValues(op, token, "ok").Inc()
	m.amountOut.WithLabelValues(op, token).Observe(result)
	m.utility.Set(utility)
	m.totalSupply.Set(totalSupply)
}
