// Package textnorm cleans raw extracted and AI-returned text.
package textnorm

import (
	"strings"
	"unicode"
)

// Normalizer adapts Normalize to the ports.Normalizer interface.
type Normalizer struct{}

func (Normalizer) Normalize(raw string) string { return Normalize(raw) }

// Normalize strips control characters (newline and tab excepted), collapses
// runs of three or more newlines to exactly two, and trims the result.
// Total over all inputs; the empty string maps to itself.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}

	cleaned := b.String()
	var out strings.Builder
	out.Grow(len(cleaned))
	newlines := 0
	for _, r := range cleaned {
		if r == '\n' {
			newlines++
			if newlines > 2 {
				continue
			}
		} else {
			newlines = 0
		}
		out.WriteRune(r)
	}

	return strings.TrimSpace(out.String())
}

// CleanLines trims every line, drops the ones left empty, and rejoins with
// single newlines. Shared by the OCR and PDF extractors.
func CleanLines(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
