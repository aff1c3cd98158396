package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus collectors on a private registry,
// so tests can build as many servers as they like without double-register
// panics.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	encoded  prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "essayqa_answer_requests_total",
			Help: "Answer requests processed, by retrieval mode and HTTP status.",
		}, []string{"mode", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "essayqa_answer_request_seconds",
			Help:    "Answer request latency in seconds, by retrieval mode.",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
		encoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "essayqa_encoded_texts_total",
			Help: "Texts sent to the embedding encoder.",
		}),
	}

	m.registry.MustRegister(m.requests, m.duration, m.encoded)
	return m
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one answer request.
func (m *Metrics) ObserveRequest(mode string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(mode, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// AddEncoded records texts handed to the encoder.
func (m *Metrics) AddEncoded(n int) {
	m.encoded.Add(float64(n))
}
