// Package extractor routes a downloaded file to the extraction strategy
// matching its declared extension.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirillkom/telegram-doc-analyzer/internal/core/domain"
	"github.com/kirillkom/telegram-doc-analyzer/internal/core/ports"
)

type Dispatcher struct {
	images ports.ImageExtractor
	pdfs   ports.PDFExtractor
}

func NewDispatcher(images ports.ImageExtractor, pdfs ports.PDFExtractor) *Dispatcher {
	return &Dispatcher{images: images, pdfs: pdfs}
}

// Extract selects by extension, case-insensitively. Unsupported extensions
// are rejected without touching the filesystem.
func (d *Dispatcher) Extract(ctx context.Context, path, extension string) (string, error) {
	switch strings.ToLower(extension) {
	case "pdf":
		return d.pdfs.ExtractPDF(ctx, path)
	case "jpg", "jpeg", "png", "webp":
		return d.images.ExtractImage(ctx, path)
	default:
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "dispatch extraction",
			fmt.Errorf("extension %q", extension))
	}
}
