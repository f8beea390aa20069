package textnorm

import (
	"strings"
	"testing"
)

func TestNormalizeCollapsesNewlineRuns(t *testing.T) {
	if got := Normalize("Texte\n\n\n\nSuite"); got != "Texte\n\nSuite" {
		t.Fatalf("Normalize() = %q, want %q", got, "Texte\n\nSuite")
	}
}

func TestNormalizeStripsControlCharacters(t *testing.T) {
	got := Normalize("a\x00b\x08c\td\ne")
	if got != "abc\td\ne" {
		t.Fatalf("Normalize() = %q, want %q", got, "abc\td\ne")
	}
}

func TestNormalizeNeverLeavesTripleNewlines(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"a\n\n\nb\n\n\n\n\nc",
		"  padded  ",
		"solo",
		strings.Repeat("\n", 20) + "x" + strings.Repeat("\n", 20),
	}
	for _, in := range inputs {
		got := Normalize(in)
		if strings.Contains(got, "\n\n\n") {
			t.Fatalf("Normalize(%q) left a triple newline: %q", in, got)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Texte\n\n\n\nSuite",
		"a\x00b\n\n\n\nc\t",
		"  leading and trailing  ",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Fatalf("Normalize(\"\") = %q, want empty", got)
	}
}

func TestCleanLinesTrimsAndDropsEmpty(t *testing.T) {
	if got := CleanLines("  Ligne 1  \n\n  Ligne 2  "); got != "Ligne 1\nLigne 2" {
		t.Fatalf("CleanLines() = %q, want %q", got, "Ligne 1\nLigne 2")
	}
}

func TestCleanLinesEmptyInput(t *testing.T) {
	if got := CleanLines("\n \n\t\n"); got != "" {
		t.Fatalf("CleanLines() = %q, want empty", got)
	}
}
