package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leadcalc"

// Metrics groups the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing, which keeps library callers and tests free of a registry.
type Metrics struct {
	estimates       *prometheus.CounterVec
	unlocks         *prometheus.CounterVec
	deliveries      *prometheus.CounterVec
	deliveryLatency prometheus.Histogram
	httpDuration    *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Funnel estimates computed, by marketing channel.",
		}, []string{"channel"}),
		unlocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unlocks_total",
			Help:      "Contact-capture unlock attempts, by outcome.",
		}, []string{"outcome"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Lead webhook deliveries, by result.",
		}, []string{"result"}),
		deliveryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "webhook_delivery_seconds",
			Help:      "Time spent delivering one lead to the webhook, retries included.",
			Buckets:   prometheus.DefBuckets,
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.estimates, m.unlocks, m.deliveries, m.deliveryLatency, m.httpDuration)
	return m
}

func (m *Metrics) Estimate(channel string) {
	if m == nil {
		return
	}
	m.estimates.WithLabelValues(channel).Inc()
}

func (m *Metrics) Unlock(outcome string) {
	if m == nil {
		return
	}
	m.unlocks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Delivery(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(result).Inc()
	m.deliveryLatency.Observe(d.Seconds())
}

// Middleware records request latency labelled with the chi route pattern, so
// /api/submissions/{id} stays one series.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		m.httpDuration.WithLabelValues(r.Method, route, strconv.Itoa(statusOf(ww))).Observe(time.Since(start).Seconds())
	})
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func statusOf(ww middleware.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}
