package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"opnsense-manager/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "opnsense_manager"

// Collectors holds all reconciliation metrics.
type Collectors struct {
	registry *prometheus.Registry

	// Reconciliation metrics
	Decisions        *prometheus.CounterVec
	Failures         *prometheus.CounterVec
	ReconcileLatency *prometheus.HistogramVec

	// Appliance API metrics
	APIRequests *prometheus.CounterVec
	APILatency  *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Collectors {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collectors{
		registry: reg,

		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Reconciliation decisions by object type, decision and check mode",
		}, []string{"type", "decision", "check"}),

		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Reconciliations that ended with an error",
		}, []string{"type"}),

		ReconcileLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Time spent planning and applying one declaration",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),

		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Appliance API calls by endpoint and HTTP status",
		}, []string{"module", "controller", "command", "status"}),

		APILatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Appliance API call latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"module", "controller"}),
	}
}

// Observe implements reconcile.Observer.
func (c *Collectors) Observe(_ context.Context, o reconcile.Outcome) error {
	c.ReconcileLatency.WithLabelValues(o.ObjectType).Observe(o.Duration.Seconds())
	if o.Err != nil {
		c.Failures.WithLabelValues(o.ObjectType).Inc()
		return nil
	}
	if o.Result != nil {
		c.Decisions.WithLabelValues(o.ObjectType, string(o.Result.Decision), strconv.FormatBool(o.Check)).Inc()
	}
	return nil
}

// ObserveRequest implements opnsense.RequestObserver. A zero status means the
// request failed before a response arrived.
func (c *Collectors) ObserveRequest(module, controller, command string, statusCode int, elapsed time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	c.APIRequests.WithLabelValues(module, controller, command, status).Inc()
	c.APILatency.WithLabelValues(module, controller).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
