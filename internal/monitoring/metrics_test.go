package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandlerExposesCounters(t *testing.T) {
	m := New("api")
	m.Lead("booking")
	m.Lead("booking")
	m.Email("skipped")

	require.Equal(t, 2.0, testutil.ToFloat64(m.LeadsTotal.WithLabelValues("booking")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `leads_captured_total{kind="booking",service="api"} 2`)
	require.Contains(t, string(body), `emails_total{outcome="skipped",service="api"} 1`)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.Lead("quote")
		m.Email("sent")
	})
}

func TestInitSentryWithoutDSN(t *testing.T) {
	flush, err := InitSentry("", "test", "dev")
	require.NoError(t, err)
	require.NotPanics(t, flush)
}
