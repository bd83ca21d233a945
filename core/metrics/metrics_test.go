package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickearl/authgate/core/metrics"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	t.Run("counters record increments", func(t *testing.T) {
		t.Parallel()

		m := metrics.NewWith(prometheus.NewRegistry())

		m.IncrementLogins()
		m.IncrementLogins()
		m.IncrementAuthDenied("forbidden_domain")
		m.IncrementRevocations("ok")
		m.IncrementCacheMisses()

		assert.Equal(t, float64(2), testutil.ToFloat64(m.Logins))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.AuthDenied.WithLabelValues("forbidden_domain")))
		assert.Equal(t, float64(0), testutil.ToFloat64(m.AuthDenied.WithLabelValues("not_logged_in")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.Revocations.WithLabelValues("ok")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheMisses))
	})

	t.Run("nil metrics record nothing without panicking", func(t *testing.T) {
		t.Parallel()

		var m *metrics.Metrics
		require.NotPanics(t, func() {
			m.IncrementLogins()
			m.IncrementAuthDenied("provider_error")
			m.IncrementRevocations("failed")
			m.IncrementCacheMisses()
		})
	})
}
