// Package ocr shells out to the external OCR toolchain: pdfcpu trims the
// target page into its own PDF, pdftoppm rasterizes it, tesseract reads it.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Tesseract implements ocrfallback.Engine against local binaries.
type Tesseract struct {
	Lang    string
	PSM     string
	Timeout time.Duration
}

func NewTesseract(lang string) *Tesseract {
	return &Tesseract{Lang: lang, PSM: "6", Timeout: 60 * time.Second}
}

// HasLanguage probes `tesseract --list-langs` for the requested pack.
func (t *Tesseract) HasLanguage(ctx context.Context, lang string) bool {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return false
	}
	out, err := t.run(ctx, "tesseract", "--list-langs")
	if err != nil {
		return false
	}
	pattern := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(lang) + `$`)
	return pattern.MatchString(out)
}

// RenderPage extracts pageNumber into a single-page PDF inside workDir and
// rasterizes it to PNG. Returns the image path.
func (t *Tesseract) RenderPage(ctx context.Context, pdfPath string, pageNumber int, workDir string) (string, error) {
	pagePdf := filepath.Join(workDir, fmt.Sprintf("page-%d.pdf", pageNumber))
	if err := api.TrimFile(pdfPath, pagePdf, []string{strconv.Itoa(pageNumber)}, nil); err != nil {
		return "", fmt.Errorf("trim page %d: %w", pageNumber, err)
	}

	imageBase := filepath.Join(workDir, fmt.Sprintf("page-%d", pageNumber))
	if _, err := t.run(ctx, "pdftoppm", "-png", "-r", "200", "-singlefile", pagePdf, imageBase); err != nil {
		return "", fmt.Errorf("rasterize page %d: %w", pageNumber, err)
	}
	return imageBase + ".png", nil
}

// Recognize runs tesseract over a rendered page image.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	args := []string{imagePath, "stdout"}
	if t.Lang != "" {
		args = append(args, "-l", t.Lang)
	}
	if t.PSM != "" {
		args = append(args, "--psm", t.PSM)
	}
	out, err := t.run(ctx, "tesseract", args...)
	if err != nil {
		return "", fmt.Errorf("tesseract %s: %w", filepath.Base(imagePath), err)
	}
	return out, nil
}

func (t *Tesseract) run(ctx context.Context, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", fmt.Errorf("%s not found in PATH", name)
	}
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", errors.New(stderr.String())
		}
		return "", err
	}
	return out.String(), nil
}
