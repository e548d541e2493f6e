package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaharia-lab/nomadweb/internal/frontend"
)

// Outcomes of the frontend and env handlers.
const (
	outcomeStatic        = "static"
	outcomeSPA           = "spa"
	outcomeEnv           = "env"
	outcomeAPINotFound   = "api_not_found"
	outcomeAssetNotFound = "asset_not_found"
	outcomeUnavailable   = "unavailable"
	outcomeIndexMissing  = "index_missing"
	outcomeIndexError    = "index_error"
	outcomeDevProxy      = "dev_proxy"
)

// Metrics holds all Prometheus metrics for the server. Each Server owns its
// registry so several can coexist in one process.
type Metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	outcomes   *prometheus.CounterVec
	injections *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nomadweb_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status"}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nomadweb_frontend_responses_total",
			Help: "Frontend and env responses by outcome",
		}, []string{"outcome"}),
		injections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nomadweb_env_injections_total",
			Help: "Entry documents rendered, by where the env payload was placed",
		}, []string{"placement"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(method string, status int) {
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *Metrics) served(outcome string) {
	m.outcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) injected(p frontend.Placement) {
	m.injections.WithLabelValues(p.String()).Inc()
}
