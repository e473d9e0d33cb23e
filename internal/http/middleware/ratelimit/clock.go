package ratelimit

import "time"

// Clock abstracts time for the limiter so refill behaviour can be tested
// without sleeping.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns the wall-clock time.
func (RealClock) Now() time.Time { return time.Now() }
