// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Authorization decisions recorded by RecordAuthDecision.
const (
	DecisionAuthenticated = "authenticated"
	DecisionMissingToken  = "missing_token"
	DecisionInvalidToken  = "invalid_token"
	DecisionOwner         = "owner"
	DecisionForbidden     = "forbidden"
)

// Recorder is the metrics surface used by middleware.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordAuthDecision(decision string)
	RecordRateLimited(route string)
}

// Collector records metrics into a Prometheus registry.
type Collector struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	auth        *prometheus.CounterVec
	rateLimited *prometheus.CounterVec
}

var _ Recorder = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "servicehub_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "servicehub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		auth: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "servicehub_auth_decisions_total",
			Help: "Session and ownership decisions by outcome.",
		}, []string{"decision"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "servicehub_rate_limited_total",
			Help: "Requests rejected by the per-client rate limit.",
		}, []string{"route"}),
	}

	reg.MustRegister(c.requests, c.duration, c.auth, c.rateLimited)
	return c
}

// RecordRequest records a finished request. route is the router pattern,
// not the raw path, to keep label cardinality bounded.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthDecision counts an authorization outcome.
func (c *Collector) RecordAuthDecision(decision string) {
	c.auth.WithLabelValues(decision).Inc()
}

// RecordRateLimited counts a rejected request.
func (c *Collector) RecordRateLimited(route string) {
	c.rateLimited.WithLabelValues(route).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordAuthDecision(string)                        {}
func (Nop) RecordRateLimited(string)                         {}
