// Package observability holds the Prometheus collector shared by the HTTP
// layer and the services.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes used as the "outcome" label.
const (
	OutcomeSaved     = "saved"
	OutcomeAnonymous = "anonymous"
	OutcomeAIError   = "ai_error"
	OutcomeDBError   = "db_error"
)

// Collector holds all Prometheus metrics for the application.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Generations        *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	ProposalsGenerated prometheus.Counter

	FlashcardsCreated *prometheus.CounterVec
	FlashcardsDeleted prometheus.Counter
}

// NewCollector creates a collector with its own registry so that tests can
// build as many as they need without duplicate registration.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generation requests by outcome",
		}, []string{"outcome"}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time spent waiting for the model provider",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 45, 60},
		}),
		ProposalsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_generated_total",
			Help:      "Flashcard proposals returned by the model",
		}),
		FlashcardsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flashcards_created_total",
			Help:      "Flashcards persisted by source",
		}, []string{"source"}),
		FlashcardsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flashcards_deleted_total",
			Help:      "Flashcards deleted",
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.Generations,
		c.GenerationDuration,
		c.ProposalsGenerated,
		c.FlashcardsCreated,
		c.FlashcardsDeleted,
	)

	return c
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveHTTP records one finished HTTP request.
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveGeneration records one generation attempt.
func (c *Collector) ObserveGeneration(outcome string, d time.Duration, proposals int) {
	if c == nil {
		return
	}
	c.Generations.WithLabelValues(outcome).Inc()
	c.GenerationDuration.Observe(d.Seconds())
	if proposals > 0 {
		c.ProposalsGenerated.Add(float64(proposals))
	}
}

// AddFlashcardsCreated counts persisted cards of one source.
func (c *Collector) AddFlashcardsCreated(source string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.FlashcardsCreated.WithLabelValues(source).Add(float64(n))
}

// AddFlashcardsDeleted counts deleted cards.
func (c *Collector) AddFlashcardsDeleted(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.FlashcardsDeleted.Add(float64(n))
}
