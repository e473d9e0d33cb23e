package backend

import (
	"net/http"
	"time"

	"swiftcourier-console/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig describes the retry behaviour of RetryTransport.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryTransport is an http.RoundTripper decorator that retries idempotent
// requests on transport failures and backend 5xx responses. 401 and other
// client errors are never retried; POST/PUT go through untouched.
type RetryTransport struct {
	next    http.RoundTripper
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryTransport wraps next with retry behaviour. A nil next falls back
// to http.DefaultTransport.
func NewRetryTransport(next http.RoundTripper, logger logx.Logger, retries counter, cfg RetryConfig) *RetryTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryTransport{next: next, logger: logger, retries: retries, cfg: cfg}
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !idempotent(req.Method) {
		return t.next.RoundTrip(req)
	}

	var (
		resp    *http.Response
		lastErr error
	)
	for attempt := 1; attempt <= t.cfg.MaxAttempts; attempt++ {
		resp, lastErr = t.next.RoundTrip(req)
		if !retryable(resp, lastErr) {
			return resp, lastErr
		}
		if req.Context().Err() != nil || attempt == t.cfg.MaxAttempts {
			break
		}
		if resp != nil {
			// drop the failed response before reissuing
			_ = resp.Body.Close()
		}

		delay := backoff(t.cfg.BaseDelay, t.cfg.MaxDelay, attempt)
		if t.retries != nil {
			t.retries.Inc()
		}
		t.logger.Warn("backend retry",
			logx.String("method", req.Method),
			logx.String("path", req.URL.Path),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
		)
		if !sleepWithContext(req, delay) {
			break
		}
	}
	return resp, lastErr
}

func idempotent(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func retryable(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp != nil && resp.StatusCode >= 500
}

// backoff computes the delay before the next attempt.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(req *http.Request, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-req.Context().Done():
		return false
	case <-timer.C:
		return true
	}
}
