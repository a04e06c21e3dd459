package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(t *testing.T, threshold, probes int) (*CircuitBreaker, *time.Time, *[]string) {
	t.Helper()

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	var transitions []string
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   probes,
		OnStateChange: func(from, to CircuitState) {
			transitions = append(transitions, string(from)+"->"+string(to))
		},
	})
	b.now = func() time.Time { return now }
	return b, &now, &transitions
}

func TestCircuitBreaker_Transitions(t *testing.T) {
	b, now, transitions := newTestBreaker(t, 2, 1)
	boom := errors.New("boom")
	fail := func() error { return boom }
	ok := func() error { return nil }

	if err := b.Execute(fail, nil); !errors.Is(err, boom) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Execute(fail, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Execute(ok, nil); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", state)
	}
	if err := b.Execute(ok, nil); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}

	want := []string{"closed->open", "open->half_open", "half_open->closed"}
	if len(*transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", *transitions)
	}
	for i := range want {
		if (*transitions)[i] != want[i] {
			t.Fatalf("unexpected transitions: %v", *transitions)
		}
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b, now, _ := newTestBreaker(t, 1, 2)
	boom := errors.New("boom")

	_ = b.Execute(func() error { return boom }, nil)
	*now = now.Add(6 * time.Second)

	if err := b.Execute(func() error { return boom }, nil); !errors.Is(err, boom) {
		t.Fatalf("expected probe error, got %v", err)
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected reopened breaker, got %s", state)
	}
}

func TestCircuitBreaker_IgnoredErrorsDoNotTrip(t *testing.T) {
	b, _, _ := newTestBreaker(t, 1, 1)

	rejected := errors.New("token rejected")
	unavailable := errors.New("account service unavailable")
	onlyUnavailable := func(err error) bool { return errors.Is(err, unavailable) }

	if err := b.Execute(func() error { return rejected }, onlyUnavailable); !errors.Is(err, rejected) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("ignored errors must not open the breaker, got %s", state)
	}

	_ = b.Execute(func() error { return unavailable }, onlyUnavailable)
	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	}, onlyUnavailable)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected open breaker to short-circuit, err=%v called=%v", err, called)
	}
}

func TestCircuitBreaker_DisabledPassesThrough(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false})
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	if err := b.Execute(func() error { return nil }, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.State() != CircuitStateClosed {
		t.Fatalf("nil breaker must report closed")
	}
}

func TestNewCircuitBreaker_Defaults(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true})
	defaults := DefaultCircuitBreakerConfig()
	if b.cfg.FailureThreshold != defaults.FailureThreshold || b.cfg.OpenTimeout != defaults.OpenTimeout || b.cfg.HalfOpenMaxReq != defaults.HalfOpenMaxReq {
		t.Fatalf("unexpected normalized config: %+v", b.cfg)
	}
}
