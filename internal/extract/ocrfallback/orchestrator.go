// Package ocrfallback decides which PDF pages cannot be trusted from their
// text layer alone and routes them through an external OCR engine. The engine
// itself (page rendering, tesseract) sits behind the Engine interface so the
// decision and merge-back logic stays testable without the real binaries.
package ocrfallback

import (
	"context"
	"fmt"
	"os"
	"unicode"

	"qcm-extractor/internal/extract/arabictext"
	"qcm-extractor/internal/extract/pdfscan"
)

// DefaultMinTextChars is the sparse-page threshold: pages whose text layer has
// fewer non-whitespace characters than this go through OCR.
const DefaultMinTextChars = 120

// Engine is the narrow capability surface of the external OCR toolchain.
type Engine interface {
	// HasLanguage reports whether the OCR language pack is installed.
	HasLanguage(ctx context.Context, lang string) bool
	// RenderPage rasterizes one page of the PDF into workDir and returns the
	// image path.
	RenderPage(ctx context.Context, pdfPath string, pageNumber int, workDir string) (string, error)
	// Recognize runs OCR over a rendered page image.
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Result carries the final page set plus the bookkeeping lists for the report.
type Result struct {
	Pages          []pdfscan.Page
	SparsePages    []int
	OcrUsedPages   []int
	OcrFailedPages []int
}

// Orchestrator applies the OCR fallback to sparse pages, one page at a time.
type Orchestrator struct {
	engine       Engine
	lang         string
	minTextChars int
}

func New(engine Engine, lang string, minTextChars int) *Orchestrator {
	if minTextChars <= 0 {
		minTextChars = DefaultMinTextChars
	}
	return &Orchestrator{engine: engine, lang: lang, minTextChars: minTextChars}
}

// Apply wraps the text-layer pages, replacing sparse ones with OCR output when
// the language pack is available. One page's OCR failure never aborts the
// batch: the page keeps its sparse text and lands in OcrFailedPages. The
// scratch directory is removed on every exit path.
func (o *Orchestrator) Apply(ctx context.Context, pdfPath string, texts []string) (Result, error) {
	result := Result{Pages: make([]pdfscan.Page, len(texts))}
	for i, text := range texts {
		result.Pages[i] = pdfscan.Page{Number: i + 1, Text: text}
		if countInk(text) < o.minTextChars {
			result.SparsePages = append(result.SparsePages, i+1)
		}
	}

	if len(result.SparsePages) == 0 || !o.engine.HasLanguage(ctx, o.lang) {
		return result, nil
	}

	workDir, err := os.MkdirTemp("", "qcm-ocr-")
	if err != nil {
		return Result{}, fmt.Errorf("create ocr scratch dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	for _, pageNumber := range result.SparsePages {
		text, err := o.ocrPage(ctx, pdfPath, pageNumber, workDir)
		if err != nil || text == "" {
			result.OcrFailedPages = append(result.OcrFailedPages, pageNumber)
			continue
		}
		result.Pages[pageNumber-1] = pdfscan.Page{Number: pageNumber, Text: text, UsedOCR: true}
		result.OcrUsedPages = append(result.OcrUsedPages, pageNumber)
	}

	return result, nil
}

func (o *Orchestrator) ocrPage(ctx context.Context, pdfPath string, pageNumber int, workDir string) (string, error) {
	imagePath, err := o.engine.RenderPage(ctx, pdfPath, pageNumber, workDir)
	if err != nil {
		return "", err
	}
	raw, err := o.engine.Recognize(ctx, imagePath)
	if err != nil {
		return "", err
	}
	return arabictext.NormalizeWhitespace(raw), nil
}

// countInk counts non-whitespace runes, the measure behind the sparse rule.
func countInk(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
