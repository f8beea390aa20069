package pdfx

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kirillkom/telegram-doc-analyzer/internal/core/domain"
)

// How many leading pages the classifier samples and how many non-whitespace
// characters of embedded text count as a real text layer. Three pages keeps
// the check cheap on large documents while surviving a blank cover page.
const (
	samplePages   = 3
	textThreshold = 10
)

// pageSampler yields the embedded text of the first maxPages pages.
type pageSampler interface {
	sample(path string, maxPages int) ([]string, error)
}

// Classifier decides whether a PDF is searchable (usable text layer) or
// scanned (image-only, needs OCR). The verdict is computed once per request
// and never cached.
type Classifier struct {
	sampler pageSampler
}

func NewClassifier() *Classifier {
	return &Classifier{sampler: textLayerSampler{}}
}

// Classify samples up to three pages of embedded text. Any sampled page with
// more than ten non-whitespace characters makes the document searchable. A
// scanned document whose text layer starts after the sampled pages is routed
// through OCR again, which is safe but wasteful.
func (c *Classifier) Classify(_ context.Context, path string) (domain.Classification, error) {
	texts, err := c.sampler.sample(path, samplePages)
	if err != nil {
		return domain.Classification{}, err
	}
	for _, text := range texts {
		if countNonWhitespace(text) > textThreshold {
			return domain.Classification{Scanned: false, SampledPages: len(texts)}, nil
		}
	}
	return domain.Classification{Scanned: true, SampledPages: len(texts)}, nil
}

func countNonWhitespace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// textLayerSampler opens the PDF structurally, without rendering.
type textLayerSampler struct{}

func (textLayerSampler) sample(path string, maxPages int) ([]string, error) {
	// Structural validation first: a broken xref or object table should be
	// reported as a load failure, not a per-page one.
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, domain.WrapError(domain.ErrDocumentLoad, "validate pdf", err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDocumentLoad, "open pdf", err)
	}
	defer f.Close()

	pages := reader.NumPage()
	if pages < maxPages {
		maxPages = pages
	}

	texts := make([]string, 0, maxPages)
	for i := 1; i <= maxPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		text, err := extractPageText(page)
		if err != nil {
			return nil, &domain.PageError{Page: i, Err: err}
		}
		texts = append(texts, text)
	}
	return texts, nil
}

func extractPageText(page pdf.Page) (text string, err error) {
	// The pdf package panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("text layer parse: %v", r)
		}
	}()
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
