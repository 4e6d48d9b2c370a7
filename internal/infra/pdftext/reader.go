// Package pdftext reads the embedded text layer of a PDF, page by page.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"qcm-extractor/internal/extract/arabictext"
)

// Reader extracts per-page text layers. Pages without a text layer come back
// as empty strings so the OCR fallback can pick them up by the sparse rule.
type Reader struct{}

func (Reader) ReadPages(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for n := 1; n <= total; n++ {
		page := r.Page(n)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		var b strings.Builder
		for _, item := range page.Content().Text {
			b.WriteString(item.S)
			b.WriteByte('\n')
		}
		pages = append(pages, arabictext.NormalizeWhitespace(b.String()))
	}
	return pages, nil
}
