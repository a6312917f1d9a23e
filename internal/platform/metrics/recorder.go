package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "footballmap"

// UpstreamStatus is implemented by provider errors that carry an HTTP status.
type UpstreamStatus interface {
	UpstreamHTTPStatus() int
}

// Recorder exposes request and provider metrics on its own Prometheus
// registry. A nil *Recorder records nothing.
type Recorder struct {
	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	providerAttempts *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		providerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Outbound provider calls, by provider, operation and outcome.",
		}, []string{"provider", "operation", "outcome"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Outbound provider call latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"provider", "operation"}),
	}
	reg.MustRegister(r.requests, r.requestDuration, r.providerAttempts, r.providerDuration)
	return r
}

func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordProviderAttempt counts one outbound call. The outcome label is "ok",
// the upstream status code, or "error" for transport and decode failures.
func (r *Recorder) RecordProviderAttempt(provider, operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.providerAttempts.WithLabelValues(provider, operation, outcome(err)).Inc()
	r.providerDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var status UpstreamStatus
	if errors.As(err, &status) {
		return strconv.Itoa(status.UpstreamHTTPStatus())
	}
	return "error"
}
