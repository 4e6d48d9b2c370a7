package cli

import (
	"errors"
	"io/fs"
	"log"

	"github.com/spf13/cobra"

	"qcm-extractor/internal/app"
	"qcm-extractor/internal/config"
	"qcm-extractor/internal/extract/ocrfallback"
	"qcm-extractor/internal/extract/signscsv"
	"qcm-extractor/internal/infra/jsonout"
	"qcm-extractor/internal/infra/ocr"
	"qcm-extractor/internal/infra/pdftext"
)

// NewExtractCmd groups the extraction pipelines.
func NewExtractCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Run extraction pipelines",
	}
	cmd.AddCommand(newExtractCSVCmd(configPath))
	cmd.AddCommand(newExtractPDFCmd(configPath))
	cmd.AddCommand(newExtractSignsCmd(configPath))
	cmd.AddCommand(newExtractAllCmd(configPath))
	return cmd
}

func newExtractCSVCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "csv [path]",
		Short: "Extract exam questions from the questions CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			csvPath := cfg.Inputs.QuestionsCSV
			if len(args) > 0 {
				csvPath = args[0]
			}

			svc := buildExtractService(cfg)
			report, err := svc.ExtractCSV(cmd.Context(), csvPath)
			if err != nil {
				return err
			}
			log.Printf("extracted %d/%d questions (%d need review, %d missing answer key)",
				report.QuestionsExtracted, report.TotalRows, report.NeedsReviewCount, report.MissingAnswerKeyCount)
			log.Printf("output: %s", jsonout.QuestionsPath(cfg.Output.DataDir))
			return nil
		},
	}
}

func newExtractPDFCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "pdf [path]",
		Short: "Extract exam questions from a scanned exam PDF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			pdfPath := cfg.Inputs.ExamPDF
			if len(args) > 0 {
				pdfPath = args[0]
			}
			if pdfPath == "" {
				return errors.New("no exam pdf configured; pass a path or set inputs.exam_pdf")
			}

			svc := buildExtractService(cfg)
			report, err := svc.ExtractPDF(cmd.Context(), pdfPath)
			if err != nil {
				return err
			}
			log.Printf("extracted %d questions from %d pages (%d need review)",
				report.QuestionsExtracted, report.TotalPages, report.NeedsReviewCount)
			if len(report.SparseTextPages) > 0 {
				log.Printf("sparse pages %v, ocr used %v, ocr failed %v",
					report.SparseTextPages, report.OcrUsedPages, report.OcrFailedPages)
			}
			return nil
		},
	}
}

func newExtractSignsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "signs [flashcards-csv] [quiz-csv]",
		Short: "Extract road-sign flashcards and quiz sets",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			flashPath := cfg.Inputs.FlashcardsCSV
			quizPath := cfg.Inputs.QuizCSV
			if len(args) > 0 {
				flashPath = args[0]
			}
			if len(args) > 1 {
				quizPath = args[1]
			}

			svc := buildExtractService(cfg)
			report, err := svc.ExtractSigns(cmd.Context(), flashPath, quizPath)
			if err != nil {
				return err
			}
			log.Printf("flashcards: %d/%d rows, quiz: %d/%d rows (%d unresolved answers, %d missing images)",
				report.FlashcardsExtracted, report.FlashcardsTotalRows,
				report.QuizExtracted, report.QuizTotalRows,
				report.UnresolvedQuizAnswers, report.MissingImageCount)
			return nil
		},
	}
}

func newExtractAllCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every configured extraction pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			svc := buildExtractService(cfg)
			err = svc.ExtractAll(cmd.Context(), app.AllInputs{
				QuestionsCSV:  cfg.Inputs.QuestionsCSV,
				ExamPDF:       cfg.Inputs.ExamPDF,
				FlashcardsCSV: cfg.Inputs.FlashcardsCSV,
				QuizCSV:       cfg.Inputs.QuizCSV,
			})
			if err != nil {
				return err
			}
			log.Printf("all pipelines completed; reports in %s", cfg.Output.DataDir)
			return nil
		},
	}
}

// loadConfig falls back to built-in defaults when the config file is absent,
// so the extract commands work in a checkout with the standard layout.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func buildExtractService(cfg config.Config) *app.ExtractService {
	writer := &jsonout.Writer{
		DataDir:              cfg.Output.DataDir,
		PublicDataDir:        cfg.Output.PublicDataDir,
		SignsAssetsSourceDir: cfg.Signs.AssetsSourceDir,
		SignsAssetsPublicDir: cfg.Signs.AssetsPublicDir,
		SignImagesSourceDir:  cfg.Signs.ImagesSourceDir,
		SignImagesPublicDir:  cfg.Signs.ImagesPublicDir,
	}

	engine := ocr.NewTesseract(cfg.OCR.Lang)
	if timeout := config.TTLDuration(cfg.OCR.Timeout, 0); timeout > 0 {
		engine.Timeout = timeout
	}
	orchestrator := ocrfallback.New(engine, cfg.OCR.Lang, cfg.OCR.MinTextChars)

	images := signscsv.NewImageResolver(cfg.Signs.ImagesSourceDir)
	return app.NewExtractService(writer, pdftext.Reader{}, orchestrator, images)
}
