// Package backoff provides the poll timing used by the subprocess package's
// drain loop: exponential backoff with jitter and an optional attempt
// ceiling.
package backoff

import (
	"math"
	"math/rand"
	"time"
)

// Config is an exponential backoff schedule with optional jitter and a
// capped number of attempts.
type Config struct {
	minBackoff   time.Duration
	maxBackoff   time.Duration
	randomFactor float64
	maxAttempts  *uint
}

// Option configures a Config.
type Option func(*Config)

// WithMaxAttempts caps the number of times Next will return a usable
// duration; past the cap, Next returns (0, false).
func WithMaxAttempts(n uint) Option {
	return func(c *Config) {
		c.maxAttempts = &n
	}
}

// NewConfig builds a Config. minBackoff is the duration used for attempt 0;
// maxBackoff is the ceiling the exponential growth is clamped to;
// randomFactor (0.0-1.0) adds up to that fraction of extra jitter.
func NewConfig(minBackoff, maxBackoff time.Duration, randomFactor float64, opts ...Option) *Config {
	c := &Config{
		minBackoff:   minBackoff,
		maxBackoff:   maxBackoff,
		randomFactor: randomFactor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Next returns the duration to wait before the given attempt (0-based), or
// false once maxAttempts has been exhausted.
func (c *Config) Next(attempt uint) (time.Duration, bool) {
	if c.maxAttempts != nil && attempt >= *c.maxAttempts {
		return 0, false
	}
	d := math.Min(
		float64(c.maxBackoff),
		float64(c.minBackoff)*math.Pow(2, float64(attempt)),
	)
	if c.randomFactor > 0 {
		//nolint:gosec // G404: jitter, not a security-sensitive random value
		d += d * c.randomFactor * rand.Float64()
	}
	return time.Duration(d), true
}
