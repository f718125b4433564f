package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service collects pipeline and HTTP metrics into a dedicated Prometheus
// registry. It implements the PipelineObserver interface.
type Service struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	queries       *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	rateLimited   prometheus.Counter
}

// NewService creates the metrics registry and registers all collectors
func NewService() *Service {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Service{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "doceo_http_requests_total",
			Help: "HTTP requests by path, method and status code",
		}, []string{"path", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "doceo_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "doceo_tutor_queries_total",
			Help: "Tutoring pipeline runs by terminal status",
		}, []string{"status"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "doceo_tutor_stage_duration_seconds",
			Help:    "Tutoring pipeline stage latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "doceo_rate_limited_total",
			Help: "Requests denied by the rate limiter",
		}),
	}

	registry.MustRegister(s.httpRequests, s.httpDuration, s.queries, s.stageDuration, s.rateLimited)
	return s
}

// StageCompleted records the duration of one pipeline stage
func (s *Service) StageCompleted(stage string, duration time.Duration) {
	s.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// QueryCompleted records the terminal status of one pipeline run
func (s *Service) QueryCompleted(status string) {
	s.queries.WithLabelValues(status).Inc()
}

// RequestCompleted records one HTTP request
func (s *Service) RequestCompleted(path, method string, status int, duration time.Duration) {
	s.httpRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	s.httpDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RateLimited records one denied request
func (s *Service) RateLimited() {
	s.rateLimited.Inc()
}

// Handler returns the HTTP handler serving the /metrics endpoint
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}
