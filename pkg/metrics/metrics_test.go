package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveHTTPRequest(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 201, 15*time.Millisecond)
	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 201, 5*time.Millisecond)
	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 422, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "422")))
}

func TestObserveDBQuery(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.ObserveDBQuery("SELECT", nil, time.Millisecond)
	m.ObserveDBQuery("INSERT", errors.New("boom"), time.Millisecond)

	// по одной серии на пару operation/status
	assert.Equal(t, 2, testutil.CollectAndCount(m.dbQueryDuration))
}
