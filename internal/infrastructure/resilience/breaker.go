// Package resilience guards remote collaborators with a circuit breaker.
// Every pipeline request gets exactly one attempt; the breaker only decides
// whether to fail fast while the collaborator is known to be down.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker/v2"
)

type Executor struct {
	cfg     Config
	breaker *gobreaker.CircuitBreaker[any]
}

func NewExecutor(operation string, cfg Config) *Executor {
	cfg = cfg.normalize()

	settings := gobreaker.Settings{
		Name:        operation,
		MaxRequests: cfg.HalfOpenMaxCalls,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit_breaker_state_change", "operation", name, "from", from.String(), "to", to.String())
		},
	}

	return &Executor{cfg: cfg, breaker: gobreaker.NewCircuitBreaker[any](settings)}
}

// Execute runs fn once through the breaker. No retries: the pipeline is
// single-attempt and a user resubmits if they want another try.
func (e *Executor) Execute(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("resilience: operation callback is nil")
	}
	_, err := e.breaker.Execute(func() (any, error) {
		return nil, fn(ctx)
	})
	return err
}

func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
