package rate_limiter

import (
	"testing"
	"time"
)

func TestLimiter_Burst(t *testing.T) {
	l := New(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Errorf("expected fourth request to be limited")
	}
	if !l.Allow("10.0.0.2") {
		t.Errorf("expected a different client to have its own bucket")
	}
}

func TestLimiter_CleanupIdleVisitors(t *testing.T) {
	l := New(1, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.GetVisitor("a")
	now = now.Add(4 * time.Minute)
	l.GetVisitor("b")
	now = now.Add(2 * time.Minute)

	if removed := l.Cleanup(); removed != 1 {
		t.Errorf("expected 1 visitor removed, got %d", removed)
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 visitor left, got %d", l.Len())
	}
}
