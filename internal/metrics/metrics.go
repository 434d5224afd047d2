package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "softscanner_admin"

// Metrics holds the collectors of the admin server. It also receives span lifecycle
// notifications from the tracing facade.
type Metrics struct {
	RequestDuration  *prometheus.HistogramVec
	Operations       *prometheus.CounterVec
	SpansEndedTwice  *prometheus.CounterVec
	SpansDropped     prometheus.Counter
	SessionsCreated  prometheus.Counter
	LoginsRejected   prometheus.Counter
	GuardRedirection prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests served by the admin UI.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traced_operations_total",
			Help:      "Traced backend operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		SpansEndedTwice: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spans_ended_twice_total",
			Help:      "Spans on which EndSpan was called more than once.",
		}, []string{"operation"}),
		SpansDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spans_dropped_total",
			Help:      "Spans dropped because the exporter failed.",
		}),
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Login sessions created.",
		}),
		LoginsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_rejected_total",
			Help:      "Login attempts rejected for bad credentials.",
		}),
		GuardRedirection: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_redirects_total",
			Help:      "Requests to protected views redirected to the login page.",
		}),
	}
}

func (m *Metrics) SpanEnded(name string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Operations.WithLabelValues(name, outcome).Inc()
}

func (m *Metrics) SpanEndedTwice(name string) {
	m.SpansEndedTwice.WithLabelValues(name).Inc()
}

func (m *Metrics) ExportFailed(spans int) {
	m.SpansDropped.Add(float64(spans))
}
