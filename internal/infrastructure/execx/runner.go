// Package execx invokes external binaries and reports exit code, stdout and
// stderr without interpreting them.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/kirillkom/telegram-doc-analyzer/internal/core/ports"
)

type Runner struct{}

func New() *Runner {
	return &Runner{}
}

// Run starts name with args and waits for it. A non-zero exit is not an
// error here; callers decide what an exit code means. The returned error is
// reserved for spawn failures (binary missing, permission denied).
func (r *Runner) Run(ctx context.Context, name string, args ...string) (ports.RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ports.RunResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("start %s: %w", name, err)
	}
	return result, nil
}

// LookPath reports whether name resolves to an executable on PATH.
func (r *Runner) LookPath(name string) error {
	_, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", name, err)
	}
	return nil
}
