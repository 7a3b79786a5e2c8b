package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the server's Prometheus collectors on a private registry so
// tests can build servers without duplicate-registration panics.
type metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	bookmarkToggles prometheus.Counter
	promotions      prometheus.Counter
	bookmarked      prometheus.Gauge
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &metrics{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hrdash_http_requests_total",
			Help: "HTTP requests served, by method and path.",
		}, []string{"method", "path"}),
		bookmarkToggles: factory.NewCounter(prometheus.CounterOpts{
			Name: "hrdash_bookmark_toggles_total",
			Help: "Bookmark toggle operations performed.",
		}),
		promotions: factory.NewCounter(prometheus.CounterOpts{
			Name: "hrdash_promotions_total",
			Help: "Employee promotions performed.",
		}),
		bookmarked: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hrdash_bookmarked_employees",
			Help: "Current size of the bookmark set.",
		}),
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
