package domain

import (
	"errors"
	"fmt"
)

var (
	// Pipeline-stage errors.
	ErrValidation = errors.New("invalid input")
	ErrDownload   = errors.New("download failed")
	ErrAnalysis   = errors.New("analysis failed")
	ErrDelivery   = errors.New("delivery failed")

	// Extraction errors.
	ErrNotFound          = errors.New("file not found")
	ErrEngineUnavailable = errors.New("extraction engine unavailable")
	ErrEngineFailed      = errors.New("extraction engine failed")
	ErrDecode            = errors.New("extraction output is not valid text")
	ErrNoText            = errors.New("no text found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDocumentLoad      = errors.New("document could not be loaded")
	ErrPageExtract       = errors.New("page extraction failed")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// EngineError carries the exit status of an external extraction tool.
// It unwraps to ErrEngineFailed.
type EngineError struct {
	Tool     string
	ExitCode int
	Stderr   string
}

func (e *EngineError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Tool, e.ExitCode, e.Stderr)
}

func (e *EngineError) Unwrap() error { return ErrEngineFailed }

// PageError marks an extraction failure on a specific PDF page.
// It unwraps to ErrPageExtract.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error { return ErrPageExtract }
