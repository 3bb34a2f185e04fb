package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"opnsense-manager/core/reconcile"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectors_Observe(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Observe(ctx, reconcile.Outcome{
		ObjectType: "firewall_rule",
		Result:     &reconcile.Result{Decision: reconcile.Create},
		Duration:   20 * time.Millisecond,
	}))
	require.NoError(t, c.Observe(ctx, reconcile.Outcome{
		ObjectType: "firewall_rule",
		Result:     &reconcile.Result{Decision: reconcile.Create},
		Check:      true,
	}))
	require.NoError(t, c.Observe(ctx, reconcile.Outcome{
		ObjectType: "vip",
		Err:        errors.New("boom"),
	}))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Decisions.WithLabelValues("firewall_rule", "create", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Decisions.WithLabelValues("firewall_rule", "create", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Failures.WithLabelValues("vip")))
}

func TestCollectors_ObserveRequest(t *testing.T) {
	c := New()
	c.ObserveRequest("firewall", "filter", "get", 200, 5*time.Millisecond)
	c.ObserveRequest("firewall", "filter", "get", 200, 5*time.Millisecond)
	c.ObserveRequest("firewall", "filter", "addRule", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.APIRequests.WithLabelValues("firewall", "filter", "get", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.APIRequests.WithLabelValues("firewall", "filter", "addRule", "error")))
}

func TestCollectors_Handler(t *testing.T) {
	c := New()
	c.ObserveRequest("unbound", "settings", "get", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "opnsense_manager_api_requests_total")
	assert.Contains(t, string(body), "go_goroutines")
}
