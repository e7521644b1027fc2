package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

// Manager holds the service's Prometheus metrics on its own registry.
type Manager struct {
	Registry *prometheus.Registry

	ListingsCreatedTotal  prometheus.Counter
	ListingsUpdatedTotal  prometheus.Counter
	MediaUploadsTotal     prometheus.Counter
	MediaDeletesTotal     prometheus.Counter
	SubmitFailuresTotal   *prometheus.CounterVec
	SubscriptionsTotal    *prometheus.CounterVec
	HTTPRequestLatency    *prometheus.HistogramVec
}

// NewManager registers the custom metrics plus the standard Go and process
// collectors.
func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	m := &Manager{
		Registry: registry,
		ListingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "listings_created_total",
			Help:      "Total number of listings created.",
		}),
		ListingsUpdatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "listings_updated_total",
			Help:      "Total number of listings updated.",
		}),
		MediaUploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "media_uploads_total",
			Help:      "Total number of media objects uploaded.",
		}),
		MediaDeletesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "media_deletes_total",
			Help:      "Total number of media objects deleted.",
		}),
		SubmitFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "submit_failures_total",
			Help:      "Total number of failed submissions by stage.",
		}, []string{"stage"}),
		SubscriptionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "subscriptions_total",
			Help:      "Total number of subscription attempts by outcome.",
		}, []string{"outcome"}),
		HTTPRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_latency_seconds",
			Help:      "Latency of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	registry.MustRegister(
		m.ListingsCreatedTotal,
		m.ListingsUpdatedTotal,
		m.MediaUploadsTotal,
		m.MediaDeletesTotal,
		m.SubmitFailuresTotal,
		m.SubscriptionsTotal,
		m.HTTPRequestLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return m
}

// Server exposes the registry on /metrics.
type Server struct {
	srv *http.Server
}

func NewServer(port string, m *Manager) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	return &Server{srv: &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func (s *Server) Start(log logger.Logger) {
	go func() {
		log.Infof("Prometheus metrics server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Metrics server stopped: %v", err)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
