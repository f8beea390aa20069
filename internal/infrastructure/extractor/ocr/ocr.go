// Package ocr extracts text from raster images with tesseract.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/kirillkom/telegram-doc-analyzer/internal/core/domain"
	"github.com/kirillkom/telegram-doc-analyzer/internal/core/ports"
	"github.com/kirillkom/telegram-doc-analyzer/internal/infrastructure/textnorm"
)

const binary = "tesseract"

type Extractor struct {
	runner    ports.Runner
	languages string
}

// New builds an image extractor recognizing the given tesseract language set,
// e.g. "fra+eng+ara".
func New(runner ports.Runner, languages string) *Extractor {
	if languages == "" {
		languages = "fra+eng+ara"
	}
	return &Extractor{runner: runner, languages: languages}
}

// ExtractImage runs a single OCR pass over the image at path and returns the
// cleaned text. One invocation, no retries.
func (e *Extractor) ExtractImage(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", domain.WrapError(domain.ErrNotFound, "stat image", err)
	}

	res, err := e.runner.Run(ctx, binary, path, "stdout", "-l", e.languages)
	if err != nil {
		return "", domain.WrapError(domain.ErrEngineUnavailable, "run tesseract",
			fmt.Errorf("tesseract is required for image OCR; install it (e.g. apt install tesseract-ocr tesseract-ocr-fra tesseract-ocr-ara) and make sure it is on PATH: %w", err))
	}
	if res.ExitCode != 0 {
		return "", &domain.EngineError{Tool: binary, ExitCode: res.ExitCode, Stderr: string(res.Stderr)}
	}
	if !utf8.Valid(res.Stdout) {
		return "", domain.WrapError(domain.ErrDecode, "decode tesseract output", errors.New("output is not valid UTF-8"))
	}

	cleaned := textnorm.CleanLines(string(res.Stdout))
	if cleaned == "" {
		return "", domain.WrapError(domain.ErrNoText, "ocr image", errors.New("no text could be extracted from the image"))
	}
	return cleaned, nil
}
