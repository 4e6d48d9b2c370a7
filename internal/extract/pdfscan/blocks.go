// Package pdfscan turns the raw text of scanned Arabic exam sheets into
// questions. The layout is loose: numbered blocks, option markers in Latin or
// Arabic letters, and a trailing answer-key section cross-referenced by the
// human-authored question numbers.
package pdfscan

import (
	"regexp"
	"strconv"
	"strings"

	"qcm-extractor/internal/extract/arabictext"
)

// Page is one page of source text, possibly replaced by OCR output upstream.
type Page struct {
	Number  int
	Text    string
	UsedOCR bool
}

// Block is a numbered question block cut out of a page. SourceNumber is zero
// when the leading number was unusable for answer-key cross-referencing.
type Block struct {
	SourceNumber int
	Text         string
}

// blockStartPattern matches a line that opens a new question block: a short
// number followed by a separator or end of line.
var blockStartPattern = regexp.MustCompile(`^\s*(\d{1,4})\s*(?:[)\.\-:،]|$)\s*(.*)$`)

// SplitBlocks segments page text into question blocks, strictly line by line
// with no backtracking. A block spanning a page boundary is not merged with its
// remainder on the next page; pages are segmented independently.
func SplitBlocks(text string) []Block {
	normalized := arabictext.NormalizeWhitespace(text)
	lines := strings.Split(normalized, "\n")

	var blocks []Block
	var current *Block

	push := func() {
		if current != nil && strings.TrimSpace(current.Text) != "" {
			blocks = append(blocks, Block{
				SourceNumber: current.SourceNumber,
				Text:         strings.TrimSpace(current.Text),
			})
		}
	}

	for _, line := range lines {
		if m := blockStartPattern.FindStringSubmatch(line); m != nil {
			push()
			number, _ := strconv.Atoi(m[1])
			current = &Block{SourceNumber: number, Text: strings.TrimSpace(m[2])}
			continue
		}
		if current == nil {
			continue
		}
		current.Text += "\n" + strings.TrimSpace(line)
	}
	push()

	return blocks
}

// NormalizeOptionID folds a raw option marker to one of A-D. Latin letters are
// case-insensitive; أ/إ/ا map to A, ب to B, ج to C, د to D. Anything else is
// not an option marker and yields "".
func NormalizeOptionID(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "A", "أ", "إ", "ا":
		return "A"
	case "B", "ب":
		return "B"
	case "C", "ج":
		return "C"
	case "D", "د":
		return "D"
	}
	return ""
}
