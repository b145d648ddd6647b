package retry

import (
	"testing"
	"time"
)

func TestDefaultConfigDisablesRetries(t *testing.T) {
	if got := DefaultConfig().MaxAttempts; got != 1 {
		t.Errorf("MaxAttempts = %d, want 1 (retries are opt-in)", got)
	}
}

func TestBackoffGrowsExponentially(t *testing.T) {
	cfg := Config{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second, Multiplier: 2}

	if got := Backoff(0, cfg); got != 100*time.Millisecond {
		t.Errorf("attempt 0 = %v", got)
	}
	if got := Backoff(1, cfg); got != 200*time.Millisecond {
		t.Errorf("attempt 1 = %v", got)
	}
	if got := Backoff(2, cfg); got != 400*time.Millisecond {
		t.Errorf("attempt 2 = %v", got)
	}
}

func TestBackoffIsCapped(t *testing.T) {
	cfg := Config{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second, Multiplier: 2}

	if got := Backoff(10, cfg); got != time.Second {
		t.Errorf("attempt 10 = %v, want the cap", got)
	}
}
