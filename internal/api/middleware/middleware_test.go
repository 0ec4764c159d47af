package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type observation struct {
	method, route string
	status        int
}

type fakeMetrics struct {
	mu  sync.Mutex
	obs []observation
}

func (m *fakeMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = append(m.obs, observation{method: method, route: route, status: status})
}

func TestAuth(t *testing.T) {
	var gotID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := Auth(nopLogger{})(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantID     int64
	}{
		{name: "valid", header: "42", wantStatus: http.StatusOK, wantID: 42},
		{name: "missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not a number", header: "abc", wantStatus: http.StatusUnauthorized},
		{name: "zero", header: "0", wantStatus: http.StatusUnauthorized},
		{name: "negative", header: "-3", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID = 0
			r := httptest.NewRequest(http.MethodGet, "/bookings/1", nil)
			if tt.header != "" {
				r.Header.Set(UserIDHeader, tt.header)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantID, gotID)
		})
	}
}

func TestGetUserID_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserID(r.Context())

	assert.False(t, ok)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/venues/{venueId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/venues/7", nil))

	require.Len(t, m.obs, 1)
	assert.Equal(t, observation{method: "GET", route: "/venues/{venueId}", status: http.StatusTeapot}, m.obs[0])
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(60, 2, nopLogger{})
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	call := func(userID int64) int {
		r := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		r = r.WithContext(WithUserID(r.Context(), userID))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, call(1))
	assert.Equal(t, http.StatusCreated, call(1))
	assert.Equal(t, http.StatusTooManyRequests, call(1))
	// у другого пользователя свой лимит
	assert.Equal(t, http.StatusCreated, call(2))

	// 60 в минуту: через секунду появляется один токен
	now = now.Add(time.Second)
	assert.Equal(t, http.StatusCreated, call(1))
	assert.Equal(t, http.StatusTooManyRequests, call(1))
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(60, 1, nopLogger{})
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.allow("user:1")
	now = now.Add(11 * time.Minute)
	limiter.allow("user:2")

	assert.Len(t, limiter.limiters, 1)
	assert.Contains(t, limiter.limiters, "user:2")
}
