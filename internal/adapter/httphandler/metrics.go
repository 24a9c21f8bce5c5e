package httphandler

import (
	"net/http"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "catalog"

// Metrics holds the collectors of the service on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	productsCreated *prometheus.CounterVec
	ordersCreated   prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"route", "code", "method"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "code", "method"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests being served",
		}),
		productsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "products_created_total",
			Help:      "Total products created by target",
		}, []string{"target"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "orders_created_total",
			Help:      "Total payment orders created",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.inFlight,
		m.productsCreated,
		m.ordersCreated,
	)
	return m
}

// Instrument wraps next with the request counter and duration collectors
// labeled by route.
func (m *Metrics) Instrument(route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	labels := prometheus.Labels{"route": route}
	h := promhttp.InstrumentHandlerCounter(
		m.requestsTotal.MustCurryWith(labels), next,
	)
	h = promhttp.InstrumentHandlerDuration(
		m.requestDuration.MustCurryWith(labels), h,
	)
	return promhttp.InstrumentHandlerInFlight(m.inFlight, h)
}

const (
	targetMain = "main"
	targetSub  = "sub"
)

// ProductCreated counts a created product. Collection names are unbounded,
// so the label only tells the main collection from the others.
func (m *Metrics) ProductCreated(collection string) {
	if m == nil {
		return
	}
	target := targetSub
	if collection == domain.MainCollection {
		target = targetMain
	}
	m.productsCreated.WithLabelValues(target).Inc()
}

func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}

func RegisterMetrics(mux *http.ServeMux, m *Metrics) {
	mux.Handle("GET /metrics", m.Handler())
}
