package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/shramba/internal/notify"
	"github.com/erazemk/shramba/internal/refresh"
)

var _ refresh.Observer = (*Metrics)(nil)

func TestRunOutcomes(t *testing.T) {
	m := New()
	generated := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	m.RunCompleted(10*time.Millisecond, refresh.Result{
		Summary:     notify.Summary{Total: 3, High: 2, Medium: 1},
		GeneratedAt: generated,
	})
	m.RunFailed(time.Millisecond, errors.New("boom"))
	m.RunSkipped()
	m.RunSkipped()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshRuns.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshRuns.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.refreshRuns.WithLabelValues("skipped")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.alerts.WithLabelValues("high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.alerts.WithLabelValues("medium")))
	assert.Equal(t, float64(generated.Unix()), testutil.ToFloat64(m.lastRefresh))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RunSkipped()
	m.ObserveRescue(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `shramba_refresh_runs_total{result="skipped"} 1`))
	assert.Contains(t, string(body), "shramba_rescue_recipes_count 1")
}
