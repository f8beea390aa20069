package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExecuteRunsOnce(t *testing.T) {
	e := NewExecutor("test", DefaultConfig())
	calls := 0
	err := e.Execute(context.Background(), func(context.Context) error {
		calls++
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls)
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	cfg := Config{
		MinRequests:      3,
		FailureRatio:     0.5,
		OpenTimeout:      time.Minute,
		HalfOpenMaxCalls: 1,
	}
	e := NewExecutor("test", cfg)

	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		if err := e.Execute(context.Background(), func(context.Context) error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("attempt %d: expected boom, got %v", i, err)
		}
	}

	calls := 0
	err := e.Execute(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	if !IsCircuitOpen(err) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if calls != 0 {
		t.Fatal("open breaker must not invoke the callback")
	}
}

func TestExecuteNilCallback(t *testing.T) {
	e := NewExecutor("test", DefaultConfig())
	if err := e.Execute(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil callback")
	}
}
