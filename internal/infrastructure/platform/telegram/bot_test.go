package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kirillkom/telegram-doc-analyzer/internal/core/domain"
)

func TestIncomingFilePicksHighestResolutionPhoto(t *testing.T) {
	msg := &tgbotapi.Message{
		MessageID: 11,
		Chat:      &tgbotapi.Chat{ID: 42},
		Photo: []tgbotapi.PhotoSize{
			{FileID: "small", FileSize: 1000, Width: 90, Height: 90},
			{FileID: "medium", FileSize: 20000, Width: 320, Height: 320},
			{FileID: "large", FileSize: 80000, Width: 1280, Height: 1280},
		},
	}

	file, ok := incomingFile(msg)
	if !ok {
		t.Fatal("expected a file")
	}
	if file.FileID != "large" {
		t.Fatalf("expected highest-resolution variant, got %q", file.FileID)
	}
	if file.Extension != "jpg" {
		t.Fatalf("expected jpg default extension, got %q", file.Extension)
	}
	if file.Kind != domain.KindPhoto {
		t.Fatalf("expected photo kind, got %q", file.Kind)
	}
	if file.ChatID != 42 || file.MessageID != 11 {
		t.Fatalf("unexpected routing fields: %+v", file)
	}
}

func TestIncomingFileReadsDocumentMetadata(t *testing.T) {
	msg := &tgbotapi.Message{
		MessageID: 12,
		Chat:      &tgbotapi.Chat{ID: 43},
		Document: &tgbotapi.Document{
			FileID:   "doc-1",
			FileName: "Cours.Analyse.PDF",
			FileSize: 123456,
		},
	}

	file, ok := incomingFile(msg)
	if !ok {
		t.Fatal("expected a file")
	}
	if file.Extension != "PDF" {
		t.Fatalf("expected declared extension verbatim, got %q", file.Extension)
	}
	if file.Kind != domain.KindDocument {
		t.Fatalf("expected document kind, got %q", file.Kind)
	}
	if file.Size != 123456 {
		t.Fatalf("expected declared size, got %d", file.Size)
	}
}

func TestIncomingFileIgnoresTextMessages(t *testing.T) {
	msg := &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 44}, Text: "bonjour"}
	if _, ok := incomingFile(msg); ok {
		t.Fatal("plain text message must not start a pipeline")
	}
}

func TestExtensionOf(t *testing.T) {
	cases := map[string]string{
		"report.pdf":     "pdf",
		"a.b.c.webp":     "webp",
		"noextension":    "",
		"archive.tar.GZ": "GZ",
	}
	for in, want := range cases {
		if got := extensionOf(in); got != want {
			t.Fatalf("extensionOf(%q) = %q, want %q", in, got, want)
		}
	}
}
