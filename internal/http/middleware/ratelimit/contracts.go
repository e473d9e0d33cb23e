package ratelimit

// Limiter decides whether a keyed caller may proceed. The middleware keys
// by client address; the limiter itself does not care what the key means.
type Limiter interface {
	Allow(key string) bool
}
