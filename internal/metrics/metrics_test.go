package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	assert.NotPanics(t, func() {
		IncHTTP("test_endpoint")
	})
}

func TestIncBackend(t *testing.T) {
	before := testutil.ToFloat64(backendRequests.WithLabelValues("company_bookings", "404"))
	IncBackend("company_bookings", 404)
	after := testutil.ToFloat64(backendRequests.WithLabelValues("company_bookings", "404"))
	assert.Equal(t, before+1, after)

	IncBackend("company_bookings", 0)
	assert.Equal(t, float64(1), testutil.ToFloat64(backendRequests.WithLabelValues("company_bookings", "error")))
}

func TestIncReadFallback(t *testing.T) {
	IncReadFallback("today_stats")
	assert.Equal(t, float64(1), testutil.ToFloat64(readFallbacks.WithLabelValues("today_stats")))
}
