// Package metrics exposes reconciliation and appliance API metrics to Prometheus.
//
// A Collectors value is both a reconcile.Observer (decisions, failures and
// durations per object type) and an opnsense.RequestObserver (API calls per
// endpoint and status). Metrics are registered on a private registry served
// by Handler, so several instances can coexist in tests.
package metrics
