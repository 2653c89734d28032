package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
)

const namespace = "barberqueue"

// Admission sources.
const (
	SourceCustomer = "customer"
	SourceWalkIn   = "walk_in"
)

// Metrics holds the queue and HTTP collectors. A nil *Metrics is valid and
// records nothing, so the engine can run without instrumentation.
type Metrics struct {
	Admissions *prometheus.CounterVec
	Departures prometheus.Counter
	Served     prometheus.Counter

	Waiting        prometheus.Gauge
	Serving        prometheus.Gauge
	AvgWaitMinutes prometheus.Gauge

	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec

	LiveConnections prometheus.Gauge
}

// New creates and registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "admissions_total",
			Help:      "Customers admitted to the queue by source.",
		}, []string{"source"}),
		Departures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "departures_total",
			Help:      "Entries removed from the queue (self-leave or staff removal).",
		}),
		Served: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "served_total",
			Help:      "Entries marked as serving.",
		}),
		Waiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "waiting",
			Help:      "Entries currently waiting.",
		}),
		Serving: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "serving",
			Help:      "Entries currently being served.",
		}),
		AvgWaitMinutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "avg_wait_minutes",
			Help:      "Rounded mean estimated wait over all entries.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status_code"}),
		LiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "connections",
			Help:      "Open live-queue WebSocket connections.",
		}),
	}

	reg.MustRegister(
		m.Admissions,
		m.Departures,
		m.Served,
		m.Waiting,
		m.Serving,
		m.AvgWaitMinutes,
		m.RequestDuration,
		m.RequestsTotal,
		m.LiveConnections,
	)
	return m
}

func (m *Metrics) RecordAdmission(source string) {
	if m == nil {
		return
	}
	m.Admissions.WithLabelValues(source).Inc()
}

func (m *Metrics) RecordDeparture() {
	if m == nil {
		return
	}
	m.Departures.Inc()
}

func (m *Metrics) RecordServing() {
	if m == nil {
		return
	}
	m.Served.Inc()
}

// ObserveStats mirrors the latest queue summary into the gauges.
func (m *Metrics) ObserveStats(st queue.Stats) {
	if m == nil {
		return
	}
	m.Waiting.Set(float64(st.Waiting))
	m.Serving.Set(float64(st.Serving))
	m.AvgWaitMinutes.Set(float64(st.AvgWaitMinutes))
}

func (m *Metrics) LiveConnected() {
	if m == nil {
		return
	}
	m.LiveConnections.Inc()
}

func (m *Metrics) LiveDisconnected() {
	if m == nil {
		return
	}
	m.LiveConnections.Dec()
}
