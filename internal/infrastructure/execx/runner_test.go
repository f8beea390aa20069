package execx

import (
	"context"
	"testing"
)

func TestRunCapturesStdout(t *testing.T) {
	r := New()
	res, err := r.Run(context.Background(), "sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", res.ExitCode)
	}
	if string(res.Stdout) != "hello" {
		t.Fatalf("unexpected stdout: %q", res.Stdout)
	}
}

func TestRunReportsNonZeroExitWithoutError(t *testing.T) {
	r := New()
	res, err := r.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", res.ExitCode)
	}
	if string(res.Stderr) != "oops\n" {
		t.Fatalf("unexpected stderr: %q", res.Stderr)
	}
}

func TestRunMissingBinaryIsAnError(t *testing.T) {
	r := New()
	if _, err := r.Run(context.Background(), "definitely-not-a-binary-xyz"); err == nil {
		t.Fatal("expected spawn error for missing binary")
	}
}

func TestLookPath(t *testing.T) {
	r := New()
	if err := r.LookPath("sh"); err != nil {
		t.Fatalf("LookPath(sh) error = %v", err)
	}
	if err := r.LookPath("definitely-not-a-binary-xyz"); err == nil {
		t.Fatal("expected error for missing binary")
	}
}
