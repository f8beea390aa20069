package openai

import (
	"context"

	"github.com/kirillkom/telegram-doc-analyzer/internal/infrastructure/resilience"
)

// GuardedAnalyzer runs completions through a circuit breaker so a dead
// endpoint fails fast instead of tying every request up in timeouts.
type GuardedAnalyzer struct {
	client *Client
	exec   *resilience.Executor
}

func NewGuarded(client *Client, exec *resilience.Executor) *GuardedAnalyzer {
	return &GuardedAnalyzer{client: client, exec: exec}
}

func (g *GuardedAnalyzer) Analyze(ctx context.Context, text string) (string, error) {
	var out string
	err := g.exec.Execute(ctx, func(ctx context.Context) error {
		var callErr error
		out, callErr = g.client.Analyze(ctx, text)
		return callErr
	})
	if err != nil {
		return "", err
	}
	return out, nil
}
