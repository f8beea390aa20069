package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kirillkom/telegram-doc-analyzer/internal/core/domain"
	"github.com/kirillkom/telegram-doc-analyzer/internal/core/ports"
)

// User-facing strings.
const (
	msgTooLarge      = "⚠️ Le fichier est trop volumineux (max 10 Mo)."
	msgReading       = "📄 Analyse en cours... Je lis votre document."
	msgThinking      = "🧠 Réflexion en cours... L'IA analyse le contenu."
	msgEmptyAnalysis = "⚠️ L'IA n'a retourné aucun contenu."
	msgReportCaption = "✅ Analyse terminée ! Le rapport était trop long pour un message direct."
	msgDownloadError = "❌ Erreur de téléchargement : %v"
	msgExtractError  = "❌ Erreur d'extraction : %v"
	msgAnalysisError = "❌ Erreur d'analyse IA : %v"
	msgDeliveryError = "❌ Erreur d'envoi du résultat : %v"
)

// Metrics is the slice of pipeline observability the orchestrator reports to.
type Metrics interface {
	StartAnalysis()
	FinishAnalysis(kind string, duration time.Duration, err error)
	ObserveDelivery(mode string)
}

// AnalyzeDocumentUseCase sequences one request:
// download → extract → analyze → normalize → deliver, with progress feedback
// and guaranteed scratch cleanup on every exit path.
type AnalyzeDocumentUseCase struct {
	messenger  ports.Messenger
	scratch    ports.ScratchStore
	extractor  ports.TextExtractor
	analyzer   ports.Analyzer
	normalizer ports.Normalizer
	metrics    Metrics
	log        *slog.Logger

	maxFileBytes int64
	inlineLimit  int
	newID        func() string
}

func NewAnalyzeDocumentUseCase(
	messenger ports.Messenger,
	scratch ports.ScratchStore,
	extractor ports.TextExtractor,
	analyzer ports.Analyzer,
	normalizer ports.Normalizer,
	metrics Metrics,
	log *slog.Logger,
	maxFileBytes int64,
	inlineLimit int,
) *AnalyzeDocumentUseCase {
	return &AnalyzeDocumentUseCase{
		messenger:    messenger,
		scratch:      scratch,
		extractor:    extractor,
		analyzer:     analyzer,
		normalizer:   normalizer,
		metrics:      metrics,
		log:          log,
		maxFileBytes: maxFileBytes,
		inlineLimit:  inlineLimit,
		newID:        uuid.NewString,
	}
}

// pipeline is the mutable state of one request walking the state machine.
type pipeline struct {
	file      domain.IncomingFile
	requestID string

	scratchPath string
	artifacts   []string
	progressID  int

	text     string
	analysis string

	failure error
}

// Handle runs the full state machine for one incoming file. The returned
// error is the terminal failure, already reported to the user.
func (uc *AnalyzeDocumentUseCase) Handle(ctx context.Context, file domain.IncomingFile) error {
	uc.metrics.StartAnalysis()
	started := time.Now()

	p := &pipeline{file: file, requestID: uc.newID()}
	for state := domain.StateReceived; !state.Terminal(); {
		next := uc.transition(ctx, p, state)
		uc.log.Debug("pipeline transition",
			"request_id", p.requestID, "from", string(state), "to", string(next))
		state = next
	}
	uc.cleanup(ctx, p)

	uc.metrics.FinishAnalysis(string(file.Kind), time.Since(started), p.failure)
	return p.failure
}

// transition executes one state and returns the next. Each failing state
// records the terminal failure, tells the user, and routes to Failed; Failed
// and Done both run the cleanup obligations exactly once.
func (uc *AnalyzeDocumentUseCase) transition(ctx context.Context, p *pipeline, state domain.State) domain.State {
	switch state {
	case domain.StateReceived:
		return uc.received(ctx, p)
	case domain.StateDownloading:
		return uc.download(ctx, p)
	case domain.StateExtracting:
		return uc.extract(ctx, p)
	case domain.StateAwaitingAnalysis:
		return uc.analyze(ctx, p)
	case domain.StateDelivering:
		return uc.deliver(ctx, p)
	default:
		p.failure = fmt.Errorf("unreachable pipeline state %q", state)
		return domain.StateFailed
	}
}

// received validates the descriptor before anything touches the filesystem.
func (uc *AnalyzeDocumentUseCase) received(ctx context.Context, p *pipeline) domain.State {
	if p.file.Size > uc.maxFileBytes {
		uc.tell(ctx, p, msgTooLarge)
		p.failure = domain.WrapError(domain.ErrValidation, "validate incoming file",
			fmt.Errorf("declared size %d exceeds limit %d", p.file.Size, uc.maxFileBytes))
		return domain.StateFailed
	}
	return domain.StateDownloading
}

func (uc *AnalyzeDocumentUseCase) download(ctx context.Context, p *pipeline) domain.State {
	var buf bytes.Buffer
	if err := uc.messenger.Download(ctx, p.file.FileID, &buf); err != nil {
		uc.tell(ctx, p, fmt.Sprintf(msgDownloadError, err))
		p.failure = domain.WrapError(domain.ErrDownload, "download file", err)
		return domain.StateFailed
	}

	key := p.requestID
	if p.file.Extension != "" {
		key += "." + p.file.Extension
	}
	path, err := uc.scratch.Save(ctx, key, &buf)
	if err != nil {
		uc.tell(ctx, p, fmt.Sprintf(msgDownloadError, err))
		p.failure = domain.WrapError(domain.ErrDownload, "persist file", err)
		return domain.StateFailed
	}
	p.scratchPath = path
	p.artifacts = append(p.artifacts, path)
	return domain.StateExtracting
}

func (uc *AnalyzeDocumentUseCase) extract(ctx context.Context, p *pipeline) domain.State {
	uc.progress(ctx, p, msgReading)

	text, err := uc.extractor.Extract(ctx, p.scratchPath, p.file.Extension)
	if err != nil {
		uc.tell(ctx, p, fmt.Sprintf(msgExtractError, err))
		p.failure = err
		return domain.StateFailed
	}
	p.text = text
	return domain.StateAwaitingAnalysis
}

func (uc *AnalyzeDocumentUseCase) analyze(ctx context.Context, p *pipeline) domain.State {
	uc.progress(ctx, p, msgThinking)

	analysis, err := uc.analyzer.Analyze(ctx, p.text)
	if err != nil {
		uc.tell(ctx, p, fmt.Sprintf(msgAnalysisError, err))
		p.failure = domain.WrapError(domain.ErrAnalysis, "analyze text", err)
		return domain.StateFailed
	}
	p.analysis = analysis
	return domain.StateDelivering
}

// deliver routes the normalized result inline or as an attached report,
// depending on its length.
func (uc *AnalyzeDocumentUseCase) deliver(ctx context.Context, p *pipeline) domain.State {
	normalized := uc.normalizer.Normalize(p.analysis)

	if normalized == "" {
		uc.tell(ctx, p, msgEmptyAnalysis)
		return domain.StateDone
	}

	if utf8.RuneCountInString(normalized) > uc.inlineLimit {
		reportPath, err := uc.scratch.WriteFile("analysis_"+p.requestID+".md", []byte(normalized))
		if err != nil {
			uc.tell(ctx, p, fmt.Sprintf(msgDeliveryError, err))
			p.failure = domain.WrapError(domain.ErrDelivery, "write report", err)
			return domain.StateFailed
		}
		p.artifacts = append(p.artifacts, reportPath)

		if err := uc.messenger.SendDocument(ctx, p.file.ChatID, reportPath, msgReportCaption); err != nil {
			uc.tell(ctx, p, fmt.Sprintf(msgDeliveryError, err))
			p.failure = domain.WrapError(domain.ErrDelivery, "send report", err)
			return domain.StateFailed
		}
		uc.metrics.ObserveDelivery("file")
		return domain.StateDone
	}

	if _, err := uc.messenger.SendMessage(ctx, p.file.ChatID, normalized); err != nil {
		uc.tell(ctx, p, fmt.Sprintf(msgDeliveryError, err))
		p.failure = domain.WrapError(domain.ErrDelivery, "send message", err)
		return domain.StateFailed
	}
	uc.metrics.ObserveDelivery("inline")
	return domain.StateDone
}

// progress sends or updates the progress indicator. Cosmetic: failures are
// logged and never fail the pipeline.
func (uc *AnalyzeDocumentUseCase) progress(ctx context.Context, p *pipeline, text string) {
	if p.progressID == 0 {
		id, err := uc.messenger.SendMessage(ctx, p.file.ChatID, text)
		if err != nil {
			uc.log.Warn("failed to send progress message", "request_id", p.requestID, "error", err)
			return
		}
		p.progressID = id
		return
	}
	if err := uc.messenger.EditMessage(ctx, p.file.ChatID, p.progressID, text); err != nil {
		uc.log.Warn("failed to edit progress message", "request_id", p.requestID, "error", err)
	}
}

// tell sends a user-visible message, best effort.
func (uc *AnalyzeDocumentUseCase) tell(ctx context.Context, p *pipeline, text string) {
	if _, err := uc.messenger.SendMessage(ctx, p.file.ChatID, text); err != nil {
		uc.log.Warn("failed to notify user", "request_id", p.requestID, "error", err)
	}
}

// cleanup removes every artifact this request created and the progress
// indicator. Runs exactly once, on both Done and Failed.
func (uc *AnalyzeDocumentUseCase) cleanup(ctx context.Context, p *pipeline) {
	for _, artifact := range p.artifacts {
		if err := uc.scratch.Remove(artifact); err != nil {
			uc.log.Warn("failed to remove scratch artifact",
				"request_id", p.requestID, "path", artifact, "error", err)
		}
	}
	p.artifacts = nil

	if p.progressID != 0 {
		if err := uc.messenger.DeleteMessage(ctx, p.file.ChatID, p.progressID); err != nil {
			uc.log.Warn("failed to delete progress message", "request_id", p.requestID, "error", err)
		}
		p.progressID = 0
	}
}
