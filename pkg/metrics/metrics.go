package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "taskflow_client"

// UnknownPlan labels checkouts whose plan failed validation.
const UnknownPlan = "unknown"

type Metrics struct {
	Registry *prometheus.Registry

	CheckoutsTotal     *prometheus.CounterVec
	PaymentPollsTotal  *prometheus.CounterVec
	PaymentPollQueries prometheus.Histogram
	ActivePaymentPolls prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
	}

	m.CheckoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout initiations by plan and outcome",
		},
		[]string{"plan", "outcome"},
	)

	m.PaymentPollsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_polls_total",
			Help:      "Finished payment status polls by final state",
		},
		[]string{"state"},
	)

	m.PaymentPollQueries = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "payment_poll_queries",
			Help:      "Number of status queries issued per payment poll",
			Buckets:   prometheus.LinearBuckets(1, 1, 8),
		},
	)

	m.ActivePaymentPolls = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_payment_polls",
		Help:      "Payment polls currently running",
	})

	m.Registry.MustRegister(
		m.CheckoutsTotal,
		m.PaymentPollsTotal,
		m.PaymentPollQueries,
		m.ActivePaymentPolls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) CheckoutStarted(plan, outcome string) {
	if m == nil {
		return
	}
	m.CheckoutsTotal.WithLabelValues(plan, outcome).Inc()
}

func (m *Metrics) PollStarted() {
	if m == nil {
		return
	}
	m.ActivePaymentPolls.Inc()
}

func (m *Metrics) PollFinished(state string, queries int) {
	if m == nil {
		return
	}
	m.ActivePaymentPolls.Dec()
	m.PaymentPollsTotal.WithLabelValues(state).Inc()
	m.PaymentPollQueries.Observe(float64(queries))
}
