package config

import "time"

const defaultPort = 8090

var defaultBackend = Backend{
	BaseURL: "http://127.0.0.1:8080/api",
	Timeout: 15 * time.Second,
	Retry: Retry{
		MaxAttempts: 3,
		BaseDelay:   150 * time.Millisecond,
		MaxDelay:    500 * time.Millisecond,
	},
}

var defaultSession = Session{
	File:   "sessions.json",
	Cookie: "sc_session",
	TTL:    24 * time.Hour,
}

var defaultLoginRateLimit = RateLimit{
	Limit:  10,
	Window: time.Minute,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultBackend returns the default backend settings.
func DefaultBackend() Backend {
	return defaultBackend
}

// DefaultSession returns the default session settings.
func DefaultSession() Session {
	return defaultSession
}

// DefaultLoginRateLimit returns the default login rate-limit settings.
func DefaultLoginRateLimit() RateLimit {
	return defaultLoginRateLimit
}
