package config

import "testing"

func TestLoadIncludesPipelineDefaults(t *testing.T) {
	t.Setenv("LLM_BASE_URL", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("LLM_TIMEOUT_SECONDS", "")
	t.Setenv("OCR_LANGUAGES", "")
	t.Setenv("MAX_FILE_BYTES", "")
	t.Setenv("INLINE_LIMIT_CHARS", "")

	cfg := Load()
	if cfg.LLMBaseURL != "https://api.openai.com/v1" {
		t.Fatalf("expected default LLM base url, got %q", cfg.LLMBaseURL)
	}
	if cfg.LLMModel != "gpt-4o-mini" {
		t.Fatalf("expected default model gpt-4o-mini, got %q", cfg.LLMModel)
	}
	if cfg.LLMTimeoutSeconds != 90 {
		t.Fatalf("expected default LLM timeout 90, got %d", cfg.LLMTimeoutSeconds)
	}
	if cfg.OCRLanguages != "fra+eng+ara" {
		t.Fatalf("expected default OCR languages fra+eng+ara, got %q", cfg.OCRLanguages)
	}
	if cfg.MaxFileBytes != 10*1024*1024 {
		t.Fatalf("expected default max file size 10 MiB, got %d", cfg.MaxFileBytes)
	}
	if cfg.InlineLimitChars != 4000 {
		t.Fatalf("expected default inline limit 4000, got %d", cfg.InlineLimitChars)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("LLM_BASE_URL", "https://api.groq.com/openai/v1")
	t.Setenv("LLM_MODEL", "llama-3.1-70b-versatile")
	t.Setenv("MAX_FILE_BYTES", "5242880")
	t.Setenv("INLINE_LIMIT_CHARS", "3000")

	cfg := Load()
	if cfg.LLMBaseURL != "https://api.groq.com/openai/v1" {
		t.Fatalf("expected base url override, got %q", cfg.LLMBaseURL)
	}
	if cfg.LLMModel != "llama-3.1-70b-versatile" {
		t.Fatalf("expected model override, got %q", cfg.LLMModel)
	}
	if cfg.MaxFileBytes != 5242880 {
		t.Fatalf("expected max file size 5242880, got %d", cfg.MaxFileBytes)
	}
	if cfg.InlineLimitChars != 3000 {
		t.Fatalf("expected inline limit 3000, got %d", cfg.InlineLimitChars)
	}
}

func TestValidateRejectsMissingCredentials(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("LLM_API_KEY", "")

	cfg := Load()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for missing bot token")
	}

	cfg.TelegramBotToken = "123456:ABC"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for missing LLM api key")
	}

	cfg.LLMAPIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}
