package webhooks

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestBackoffSchedule(t *testing.T) {
	d := NewDispatcher(nil, 5, 30*time.Second, zap.NewNop())

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 30 * time.Second},
		{2, 60 * time.Second},
		{3, 120 * time.Second},
		{4, 240 * time.Second},
		// Out-of-range attempts clamp to the first delay
		{0, 30 * time.Second},
		{-1, 30 * time.Second},
	}

	for _, tt := range tests {
		if got := d.Backoff(tt.attempt); got != tt.expected {
			t.Errorf("Backoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
		}
	}
}

func TestDispatcherDefaults(t *testing.T) {
	d := NewDispatcher(nil, 0, 0, zap.NewNop())
	if d.maxAttempts != 5 {
		t.Errorf("maxAttempts = %d, want 5", d.maxAttempts)
	}
	if d.Backoff(1) != 30*time.Second {
		t.Errorf("default base backoff = %v, want 30s", d.Backoff(1))
	}
}

func TestSignDeterministic(t *testing.T) {
	body := []byte(`{"event":"campaign_launched"}`)
	a := sign("secret", body)
	b := sign("secret", body)
	if a != b {
		t.Error("signature must be deterministic")
	}
	if a == sign("other", body) {
		t.Error("different secrets must produce different signatures")
	}
	if len(a) != 64 {
		t.Errorf("signature length = %d, want 64 hex chars", len(a))
	}
}
