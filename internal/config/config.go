package config

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	LogLevel string

	TelegramBotToken string

	LLMBaseURL        string
	LLMModel          string
	LLMAPIKey         string
	LLMTimeoutSeconds int

	ScratchDir   string
	OCRLanguages string

	MaxFileBytes     int64
	InlineLimitChars int

	MetricsPort string
}

func Load() Config {
	return Config{
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		TelegramBotToken: mustEnv("TELEGRAM_BOT_TOKEN", ""),

		LLMBaseURL:        mustEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:          mustEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:         mustEnv("LLM_API_KEY", ""),
		LLMTimeoutSeconds: mustEnvInt("LLM_TIMEOUT_SECONDS", 90),

		ScratchDir:   mustEnv("SCRATCH_DIR", "./temp"),
		OCRLanguages: mustEnv("OCR_LANGUAGES", "fra+eng+ara"),

		MaxFileBytes:     mustEnvInt64("MAX_FILE_BYTES", 10*1024*1024),
		InlineLimitChars: mustEnvInt("INLINE_LIMIT_CHARS", 4000),

		MetricsPort: mustEnv("METRICS_PORT", "9090"),
	}
}

// Validate rejects configurations the service cannot start with. Missing
// collaborator credentials are fatal: the bot must not accept requests it can
// never complete.
func (c Config) Validate() error {
	if c.TelegramBotToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required: create a bot via @BotFather and export the token")
	}
	if c.LLMAPIKey == "" {
		return errors.New("LLM_API_KEY is required: export an API key for the configured chat-completion endpoint")
	}
	return nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
