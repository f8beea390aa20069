// Package pdfx extracts text from PDF documents, routing searchable files
// through pdftotext and scanned files through per-page rasterization + OCR.
package pdfx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kirillkom/telegram-doc-analyzer/internal/core/domain"
	"github.com/kirillkom/telegram-doc-analyzer/internal/core/ports"
	"github.com/kirillkom/telegram-doc-analyzer/internal/infrastructure/textnorm"
)

const (
	textToolBinary   = "pdftotext"
	rasterizerBinary = "pdftoppm"
	rasterDPI        = "300"
)

type classifier interface {
	Classify(ctx context.Context, path string) (domain.Classification, error)
}

type pageCounter func(path string) (int, error)

type Extractor struct {
	classifier classifier
	runner     ports.Runner
	images     ports.ImageExtractor
	scratch    ports.ScratchStore
	pageCount  pageCounter
	log        *slog.Logger
}

func New(cls *Classifier, runner ports.Runner, images ports.ImageExtractor, scratch ports.ScratchStore, log *slog.Logger) *Extractor {
	return &Extractor{
		classifier: cls,
		runner:     runner,
		images:     images,
		scratch:    scratch,
		pageCount:  api.PageCountFile,
		log:        log,
	}
}

// ExtractPDF classifies the document once, then runs exactly one of the two
// strategies. All page images produced along the way are deleted before it
// returns, success or failure.
func (e *Extractor) ExtractPDF(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", domain.WrapError(domain.ErrNotFound, "stat pdf", err)
	}

	verdict, err := e.classifier.Classify(ctx, path)
	if err != nil {
		return "", err
	}

	if verdict.Scanned {
		e.log.Debug("pdf classified as scanned, rasterizing", "path", path)
		return e.extractScanned(ctx, path)
	}
	e.log.Debug("pdf classified as searchable", "path", path)
	return e.extractSearchable(ctx, path)
}

func (e *Extractor) extractSearchable(ctx context.Context, path string) (string, error) {
	res, err := e.runner.Run(ctx, textToolBinary, "-layout", path, "-")
	if err != nil {
		return "", domain.WrapError(domain.ErrEngineUnavailable, "run pdftotext",
			fmt.Errorf("pdftotext is required to read searchable PDFs; install poppler-utils and make sure it is on PATH: %w", err))
	}
	if res.ExitCode != 0 {
		return "", &domain.EngineError{Tool: textToolBinary, ExitCode: res.ExitCode, Stderr: string(res.Stderr)}
	}
	if !utf8.Valid(res.Stdout) {
		return "", domain.WrapError(domain.ErrDecode, "decode pdftotext output", errors.New("output is not valid UTF-8"))
	}

	cleaned := textnorm.CleanLines(string(res.Stdout))
	if cleaned == "" {
		return "", domain.WrapError(domain.ErrNoText, "extract pdf text layer", errors.New("text layer produced no text"))
	}
	return cleaned, nil
}

// extractScanned rasterizes every page at 300 DPI into a request-scoped page
// directory, OCRs the pages strictly in order, and deletes each page image
// right after it is consumed. A failure on any page aborts the whole
// extraction; no partial-document result is returned.
func (e *Extractor) extractScanned(ctx context.Context, path string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	pageDir, err := e.scratch.PageDir(stem)
	if err != nil {
		return "", domain.WrapError(domain.ErrEngineFailed, "prepare page dir", err)
	}
	defer e.removePageDir(pageDir)

	expected, err := e.pageCount(path)
	if err != nil {
		return "", domain.WrapError(domain.ErrDocumentLoad, "count pdf pages", err)
	}

	res, err := e.runner.Run(ctx, rasterizerBinary, "-png", "-r", rasterDPI, path, filepath.Join(pageDir, stem))
	if err != nil {
		return "", domain.WrapError(domain.ErrEngineUnavailable, "run pdftoppm",
			fmt.Errorf("pdftoppm is required to rasterize scanned PDFs; install poppler-utils and make sure it is on PATH: %w", err))
	}
	if res.ExitCode != 0 {
		return "", &domain.EngineError{Tool: rasterizerBinary, ExitCode: res.ExitCode, Stderr: string(res.Stderr)}
	}

	images, err := listPageImages(pageDir)
	if err != nil {
		return "", domain.WrapError(domain.ErrEngineFailed, "list page images", err)
	}
	if len(images) != expected {
		return "", domain.WrapError(domain.ErrEngineFailed, "rasterize pdf",
			fmt.Errorf("pdftoppm produced %d of %d pages", len(images), expected))
	}

	pages := make([]string, 0, len(images))
	for i, img := range images {
		text, err := e.images.ExtractImage(ctx, img)
		if err != nil {
			return "", &domain.PageError{Page: i + 1, Err: err}
		}
		pages = append(pages, text)

		// Bounds peak disk usage to one rendered page at a time.
		if err := e.scratch.Remove(img); err != nil {
			e.log.Warn("failed to remove page image", "path", img, "error", err)
		}
	}

	return strings.TrimSpace(strings.Join(pages, "\n\n")), nil
}

// listPageImages returns the rasterized pages in page order. Lexicographic
// sort is enough: pdftoppm zero-pads page numbers in its output names.
func listPageImages(dir string) ([]string, error) {
	images, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, err
	}
	sort.Strings(images)
	return images, nil
}

// removePageDir clears any page images a failed extraction left behind.
func (e *Extractor) removePageDir(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		e.log.Warn("failed to remove page dir", "path", dir, "error", err)
	}
}
