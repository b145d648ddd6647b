// internal/retry/retry.go
package retry

import (
	"math"
	"time"
)

// Config defines backoff behavior for repeated transport failures.
// MaxAttempts counts the first try, so 1 means no retry at all.
type Config struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// DefaultConfig returns the default policy: no retries, matching the
// reference behavior. Callers opt in by raising MaxAttempts.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    1,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		Multiplier:     2.0,
	}
}

// Backoff returns how long to wait before re-running the given zero-based
// attempt, growing exponentially and capped at MaxBackoff.
func Backoff(attempt int, cfg Config) time.Duration {
	d := float64(cfg.InitialBackoff) * math.Pow(cfg.Multiplier, float64(attempt))
	if d > float64(cfg.MaxBackoff) {
		d = float64(cfg.MaxBackoff)
	}
	return time.Duration(d)
}
