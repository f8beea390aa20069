package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kirillkom/telegram-doc-analyzer/internal/core/domain"
)

func TestAnalyzeSendsSystemInstructionAndText(t *testing.T) {
	var captured chatRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"## Titre\nContenu"}}]}`))
	}))
	defer server.Close()

	client := New(server.URL, "gpt-4o-mini", "sk-test", 5*time.Second)
	got, err := client.Analyze(context.Background(), "texte extrait")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got != "## Titre\nContenu" {
		t.Fatalf("Analyze() = %q", got)
	}
	if authHeader != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", authHeader)
	}
	if captured.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model %q", captured.Model)
	}
	if captured.Temperature != 0.3 {
		t.Fatalf("unexpected temperature %v", captured.Temperature)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Content != "texte extrait" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
}

func TestAnalyzeSurfacesHTTPStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New(server.URL, "gpt-4o-mini", "sk-test", 5*time.Second)
	_, err := client.Analyze(context.Background(), "texte")
	if !domain.IsKind(err, domain.ErrAnalysis) {
		t.Fatalf("expected ErrAnalysis, got %v", err)
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected status and body in error, got %v", err)
	}
}

func TestAnalyzeEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, "gpt-4o-mini", "sk-test", 5*time.Second)
	_, err := client.Analyze(context.Background(), "texte")
	if !domain.IsKind(err, domain.ErrAnalysis) {
		t.Fatalf("expected ErrAnalysis, got %v", err)
	}
}

func TestAnalyzeMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":`))
	}))
	defer server.Close()

	client := New(server.URL, "gpt-4o-mini", "sk-test", 5*time.Second)
	_, err := client.Analyze(context.Background(), "texte")
	if !domain.IsKind(err, domain.ErrAnalysis) {
		t.Fatalf("expected ErrAnalysis, got %v", err)
	}
}
