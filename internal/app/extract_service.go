package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"qcm-extractor/internal/domain"
	"qcm-extractor/internal/extract/examcsv"
	"qcm-extractor/internal/extract/ocrfallback"
	"qcm-extractor/internal/extract/pdfscan"
	"qcm-extractor/internal/extract/signscsv"
)

// OutputWriter abstracts where generated sets and reports land (filesystem,
// test fakes).
type OutputWriter interface {
	WriteQuestions(set domain.QuestionSet) error
	WriteFlashcards(set domain.SignFlashcardSet) error
	WriteQuiz(set domain.SignQuizSet) error
	WriteExtractionReport(report any) error
	WriteSignsReport(report any) error
	SyncSignsAssets() (bool, error)
	SyncSignImages() (bool, error)
}

// PageReader extracts the text layer of a PDF, one string per page.
type PageReader interface {
	ReadPages(path string) ([]string, error)
}

// ExtractService runs the extraction pipelines end to end: read the input,
// map it, write the generated JSON plus the run report.
type ExtractService struct {
	writer OutputWriter
	pages  PageReader
	ocr    *ocrfallback.Orchestrator
	images signscsv.ImageResolver
}

func NewExtractService(writer OutputWriter, pages PageReader, ocr *ocrfallback.Orchestrator, images signscsv.ImageResolver) *ExtractService {
	return &ExtractService{writer: writer, pages: pages, ocr: ocr, images: images}
}

// ExtractCSV runs the exam-question CSV pipeline. A missing input file is
// fatal; malformed rows are counted in the report instead.
func (s *ExtractService) ExtractCSV(ctx context.Context, csvPath string) (domain.CsvExtractionReport, error) {
	content, err := os.ReadFile(csvPath)
	if err != nil {
		return domain.CsvExtractionReport{}, fmt.Errorf("read questions csv: %w", err)
	}

	set, report, err := examcsv.BuildQuestionSet(string(content))
	if err != nil {
		return domain.CsvExtractionReport{}, fmt.Errorf("map questions csv %s: %w", csvPath, err)
	}
	report.SourceCsvPath = csvPath

	synced, err := s.writer.SyncSignsAssets()
	if err != nil {
		return domain.CsvExtractionReport{}, fmt.Errorf("sync signs assets: %w", err)
	}
	report.SignsAssetsSynced = synced

	if err := s.writer.WriteQuestions(set); err != nil {
		return domain.CsvExtractionReport{}, err
	}
	if err := s.writer.WriteExtractionReport(report); err != nil {
		return domain.CsvExtractionReport{}, err
	}
	return report, nil
}

// ExtractPDF runs the scanned-exam pipeline: text layer first, OCR fallback
// for sparse pages, then block segmentation over the final page set.
func (s *ExtractService) ExtractPDF(ctx context.Context, pdfPath string) (domain.PdfExtractionReport, error) {
	texts, err := s.pages.ReadPages(pdfPath)
	if err != nil {
		return domain.PdfExtractionReport{}, fmt.Errorf("read pdf text layer: %w", err)
	}

	ocrResult, err := s.ocr.Apply(ctx, pdfPath, texts)
	if err != nil {
		return domain.PdfExtractionReport{}, fmt.Errorf("ocr fallback: %w", err)
	}

	set := pdfscan.BuildQuestionSet(ocrResult.Pages)

	report := domain.PdfExtractionReport{
		PdfPath:         pdfPath,
		GeneratedAt:     set.ImportedAt,
		TotalPages:      len(ocrResult.Pages),
		SparseTextPages: ocrResult.SparsePages,
		OcrUsedPages:    ocrResult.OcrUsedPages,
		OcrFailedPages:  ocrResult.OcrFailedPages,
	}
	report.QuestionsExtracted = len(set.Questions)
	for _, q := range set.Questions {
		if q.NeedsReview {
			report.NeedsReviewCount++
		}
		if q.CorrectChoiceID == "" {
			report.MissingAnswerKeyCount++
		}
	}

	if err := s.writer.WriteQuestions(set); err != nil {
		return domain.PdfExtractionReport{}, err
	}
	if err := s.writer.WriteExtractionReport(report); err != nil {
		return domain.PdfExtractionReport{}, err
	}
	return report, nil
}

// ExtractSigns runs both sign CSV pipelines and writes one combined report.
func (s *ExtractService) ExtractSigns(ctx context.Context, flashcardsPath, quizPath string) (domain.SignsExtractionReport, error) {
	flashContent, err := os.ReadFile(flashcardsPath)
	if err != nil {
		return domain.SignsExtractionReport{}, fmt.Errorf("read flashcards csv: %w", err)
	}
	quizContent, err := os.ReadFile(quizPath)
	if err != nil {
		return domain.SignsExtractionReport{}, fmt.Errorf("read signs quiz csv: %w", err)
	}

	flash, err := signscsv.BuildFlashcards(string(flashContent), s.images)
	if err != nil {
		return domain.SignsExtractionReport{}, fmt.Errorf("map flashcards csv %s: %w", flashcardsPath, err)
	}
	quiz, err := signscsv.BuildQuiz(string(quizContent), s.images)
	if err != nil {
		return domain.SignsExtractionReport{}, fmt.Errorf("map signs quiz csv %s: %w", quizPath, err)
	}

	synced, err := s.writer.SyncSignImages()
	if err != nil {
		return domain.SignsExtractionReport{}, fmt.Errorf("sync sign images: %w", err)
	}

	report := domain.SignsExtractionReport{
		FlashcardsCsvPath:     flashcardsPath,
		QuizCsvPath:           quizPath,
		GeneratedAt:           time.Now().UTC(),
		FlashcardsTotalRows:   flash.TotalRows,
		FlashcardsExtracted:   len(flash.Set.Cards),
		FlashcardsSkipped:     flash.Skipped,
		QuizTotalRows:         quiz.TotalRows,
		QuizExtracted:         len(quiz.Set.Questions),
		QuizSkipped:           quiz.Skipped,
		UnresolvedQuizAnswers: quiz.UnresolvedAnswers,
		MissingImageCount:     flash.MissingImages + quiz.MissingImages,
		ImagesSynced:          synced,
	}

	if err := s.writer.WriteFlashcards(flash.Set); err != nil {
		return domain.SignsExtractionReport{}, err
	}
	if err := s.writer.WriteQuiz(quiz.Set); err != nil {
		return domain.SignsExtractionReport{}, err
	}
	if err := s.writer.WriteSignsReport(report); err != nil {
		return domain.SignsExtractionReport{}, err
	}
	return report, nil
}

// AllInputs names every source file the combined run consumes.
type AllInputs struct {
	QuestionsCSV  string
	ExamPDF       string
	FlashcardsCSV string
	QuizCSV       string
}

// ExtractAll runs the question and signs pipelines concurrently. The PDF and
// CSV runs share the questions output file, so they stay sequential inside one
// goroutine with the curated CSV written last; the PDF pipeline is skipped
// when no PDF path is configured. The first failing pipeline cancels the rest.
func (s *ExtractService) ExtractAll(ctx context.Context, inputs AllInputs) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if strings.TrimSpace(inputs.ExamPDF) != "" {
			if _, err := s.ExtractPDF(ctx, inputs.ExamPDF); err != nil {
				return err
			}
		}
		_, err := s.ExtractCSV(ctx, inputs.QuestionsCSV)
		return err
	})
	g.Go(func() error {
		_, err := s.ExtractSigns(ctx, inputs.FlashcardsCSV, inputs.QuizCSV)
		return err
	})

	return g.Wait()
}
