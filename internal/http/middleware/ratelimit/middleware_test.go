package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

func TestMiddlewareAllowsUnderLimit(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	limiter := NewTokenBucketPerWindow(clock, 2, time.Minute, 0, 0)
	mw := New(nil, nil, limiter)

	called := 0
	handler := mw.Handler()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called++
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	require.Equal(t, 2, called)
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	limiter := NewTokenBucketPerWindow(clock, 1, time.Minute, 0, 0)
	mw := New(nil, nil, limiter)

	handler := mw.Handler()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	first := httptest.NewRequest(http.MethodPost, "/login", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodPost, "/login", nil)
	second.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, second)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, rec.Body.String(), "Too many attempts")
	require.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestMiddlewareLimitsPerClient(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	limiter := NewTokenBucketPerWindow(clock, 1, time.Minute, 0, 0)
	mw := New(nil, nil, limiter)

	called := 0
	handler := mw.Handler()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called++
	}))

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	require.Equal(t, 3, called)
}

func TestMiddlewareCountsRejections(t *testing.T) {
	t.Parallel()

	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_rejections_total"})
	mw := New(nil, counter, denyAll{})

	handler := mw.Handler()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run when rejected")
	}))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, float64(1), testutil.ToFloat64(counter))
}

func TestTokenBucketRefillsOverTime(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	limiter := NewTokenBucketPerWindow(clock, 1, time.Minute, 0, 0)

	require.True(t, limiter.Allow("ip"))
	require.False(t, limiter.Allow("ip"))

	clock.now = clock.now.Add(time.Minute)
	require.True(t, limiter.Allow("ip"))
}
