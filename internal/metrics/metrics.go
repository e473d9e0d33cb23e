package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewLoginRateLimitedTotal returns a Prometheus counter for login attempts rejected by rate limiting
func NewLoginRateLimitedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "login_rate_limited_total",
		Help: "Total number of login attempts rejected due to rate limiting",
	})
}

// NewBackendRetriesTotal returns a Prometheus counter for retry attempts against the backend API
func NewBackendRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "backend_retries_total",
		Help: "Total number of retry attempts performed against the backend API",
	})
}

// NewForcedLogoutsTotal returns a Prometheus counter for sessions torn down after a backend 401
func NewForcedLogoutsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "forced_logouts_total",
		Help: "Total number of sessions invalidated after an unauthorized backend response",
	})
}
