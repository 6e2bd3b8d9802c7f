package restapi

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records one observation per dispatched request. It is safe for
// concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
}

// NewMetrics registers the request metrics on registry under namespace
// (e.g. "kucoin"). Passing nil uses prometheus.DefaultRegisterer.
func NewMetrics(registry prometheus.Registerer, namespace string) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Metrics{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rest_requests_total",
				Help:      "Total number of REST requests dispatched",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rest_request_duration_seconds",
				Help:      "Duration of REST requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rest_errors_total",
				Help:      "Total number of failed REST requests by failure kind",
			},
			[]string{"method", "endpoint", "kind"},
		),
	}
}

// observe records a finished request. statusCode is zero when no response
// was received.
func (m *Metrics) observe(method Method, endpoint string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := "none"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	m.requestsTotal.WithLabelValues(string(method), endpoint, code).Inc()
	m.requestDuration.WithLabelValues(string(method), endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) failure(method Method, endpoint, kind string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(string(method), endpoint, kind).Inc()
}
