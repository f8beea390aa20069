package ports

import (
	"context"
	"io"
)

// Messenger is the chat-platform collaborator: outbound messages plus file
// content download. All calls are fallible remote calls.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) (int, error)
	EditMessage(ctx context.Context, chatID int64, messageID int, text string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	SendDocument(ctx context.Context, chatID int64, path, caption string) error
	Download(ctx context.Context, fileID string, dst io.Writer) error
}

// TextExtractor turns a downloaded file into plain text, selecting the
// strategy from the declared extension.
type TextExtractor interface {
	Extract(ctx context.Context, path, extension string) (string, error)
}

// ImageExtractor runs OCR on a single raster image.
type ImageExtractor interface {
	ExtractImage(ctx context.Context, path string) (string, error)
}

// PDFExtractor extracts text from a PDF, choosing between the embedded text
// layer and per-page OCR.
type PDFExtractor interface {
	ExtractPDF(ctx context.Context, path string) (string, error)
}

// Analyzer sends extracted text to the AI collaborator and returns the
// restructured completion.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}

// Normalizer cleans extracted or AI-returned text.
type Normalizer interface {
	Normalize(raw string) string
}

// RunResult is the observable outcome of one external process invocation.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner invokes an external binary. The error is non-nil only when the
// process could not be started at all (missing binary, bad path); a non-zero
// exit is reported through RunResult.ExitCode.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (RunResult, error)
	LookPath(name string) error
}

// ScratchStore owns request-scoped temporary artifacts under a single
// process-wide root.
type ScratchStore interface {
	Save(ctx context.Context, key string, data io.Reader) (string, error)
	WriteFile(key string, data []byte) (string, error)
	Remove(path string) error
	PageDir(stem string) (string, error)
}
