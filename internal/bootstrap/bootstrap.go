package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kirillkom/telegram-doc-analyzer/internal/config"
	"github.com/kirillkom/telegram-doc-analyzer/internal/core/usecase"
	"github.com/kirillkom/telegram-doc-analyzer/internal/infrastructure/execx"
	"github.com/kirillkom/telegram-doc-analyzer/internal/infrastructure/extractor"
	"github.com/kirillkom/telegram-doc-analyzer/internal/infrastructure/extractor/ocr"
	"github.com/kirillkom/telegram-doc-analyzer/internal/infrastructure/extractor/pdfx"
	"github.com/kirillkom/telegram-doc-analyzer/internal/infrastructure/llm/openai"
	"github.com/kirillkom/telegram-doc-analyzer/internal/infrastructure/platform/telegram"
	"github.com/kirillkom/telegram-doc-analyzer/internal/infrastructure/resilience"
	"github.com/kirillkom/telegram-doc-analyzer/internal/infrastructure/storage/scratch"
	"github.com/kirillkom/telegram-doc-analyzer/internal/infrastructure/textnorm"
	"github.com/kirillkom/telegram-doc-analyzer/internal/observability/metrics"
)

const serviceName = "telegram-doc-analyzer"

type App struct {
	Config  config.Config
	Bot     *telegram.Bot
	Analyze *usecase.AnalyzeDocumentUseCase
	Metrics *metrics.PipelineMetrics
}

func New(cfg config.Config, log *slog.Logger) (*App, error) {
	store, err := scratch.New(cfg.ScratchDir)
	if err != nil {
		return nil, fmt.Errorf("init scratch storage: %w", err)
	}

	bot, err := telegram.New(cfg.TelegramBotToken, log)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}

	runner := execx.New()
	images := ocr.New(runner, cfg.OCRLanguages)
	pdfs := pdfx.New(pdfx.NewClassifier(), runner, images, store, log)
	dispatcher := extractor.NewDispatcher(images, pdfs)

	llmClient := openai.New(cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMAPIKey,
		time.Duration(cfg.LLMTimeoutSeconds)*time.Second)
	analyzer := openai.NewGuarded(llmClient, resilience.NewExecutor("chat_completion", resilience.DefaultConfig()))

	pipelineMetrics := metrics.NewPipelineMetrics(serviceName)

	analyze := usecase.NewAnalyzeDocumentUseCase(
		bot,
		store,
		dispatcher,
		analyzer,
		textnorm.Normalizer{},
		metricsAdapter{m: pipelineMetrics},
		log,
		cfg.MaxFileBytes,
		cfg.InlineLimitChars,
	)

	return &App{
		Config:  cfg,
		Bot:     bot,
		Analyze: analyze,
		Metrics: pipelineMetrics,
	}, nil
}

// metricsAdapter binds the service label so the use case stays unaware of
// prometheus label plumbing.
type metricsAdapter struct {
	m *metrics.PipelineMetrics
}

func (a metricsAdapter) StartAnalysis() { a.m.StartAnalysis() }

func (a metricsAdapter) FinishAnalysis(kind string, duration time.Duration, err error) {
	a.m.FinishAnalysis(serviceName, kind, duration, err)
}

func (a metricsAdapter) ObserveDelivery(mode string) {
	a.m.ObserveDelivery(serviceName, mode)
}
