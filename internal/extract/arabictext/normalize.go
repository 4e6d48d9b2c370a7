// Package arabictext provides the canonicalization helpers shared by every
// extraction pipeline: digit folding, whitespace normalization, and the
// compare-key used for fuzzy answer matching.
package arabictext

import (
	"strings"
	"unicode"
)

// NormalizeDigits maps Arabic-Indic (٠-٩) and Eastern Arabic (۰-۹) digits to
// ASCII 0-9. All other runes pass through unchanged.
func NormalizeDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeWhitespace folds digits, strips carriage returns, collapses runs of
// spaces and tabs into a single space, caps blank-line runs at one empty line,
// and trims the result. Idempotent: applying it twice changes nothing.
func NormalizeWhitespace(s string) string {
	s = NormalizeDigits(s)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = collapseBlanks(s)
	s = collapseNewlines(s)
	return strings.TrimSpace(s)
}

// collapseBlanks replaces each run of spaces/tabs with a single space.
func collapseBlanks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			inRun = true
			continue
		}
		if inRun {
			b.WriteByte(' ')
			inRun = false
		}
		b.WriteRune(r)
	}
	if inRun {
		b.WriteByte(' ')
	}
	return b.String()
}

// collapseNewlines caps each run of 3+ consecutive newlines at exactly 2.
// Newline runs broken by other characters (including spaces) are left alone.
func collapseNewlines(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	run := 0
	for _, r := range s {
		if r == '\n' {
			run++
			continue
		}
		writeNewlines(&b, run)
		run = 0
		b.WriteRune(r)
	}
	writeNewlines(&b, run)
	return b.String()
}

func writeNewlines(b *strings.Builder, run int) {
	if run > 2 {
		run = 2
	}
	for i := 0; i < run; i++ {
		b.WriteByte('\n')
	}
}

// strippedPunctuation is the fixed set removed when building compare keys:
// Latin and Arabic sentence punctuation plus the tatweel elongation mark.
const strippedPunctuation = ".,،:؛!?؟\"'`ـ"

// CompareKey reduces a string to a form used only for equality testing between
// human-entered answer text and choice text: whitespace and punctuation
// removed, case folded. Two strings name the same answer iff their keys match.
func CompareKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || strings.ContainsRune(strippedPunctuation, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
