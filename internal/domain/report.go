package domain

import "time"

// CsvExtractionReport summarizes one CSV question extraction run. Every silent
// drop or review flag in the mapper is reflected in a counter here so operators
// can tell a clean run from one that needs manual review.
type CsvExtractionReport struct {
	SourceCsvPath          string    `json:"sourceCsvPath"`
	GeneratedAt            time.Time `json:"generatedAt"`
	TotalRows              int       `json:"totalRows"`
	QuestionsExtracted     int       `json:"questionsExtracted"`
	NeedsReviewCount       int       `json:"needsReviewCount"`
	MissingAnswerKeyCount  int       `json:"missingAnswerKeyCount"`
	SignsWithImageCount    int       `json:"signsWithImageCount"`
	SignsMissingImageCount int       `json:"signsMissingImageCount"`
	RowsSkipped            int       `json:"rowsSkipped"`
	SignsAssetsSynced      bool      `json:"signsAssetsSynced"`
}

// PdfExtractionReport summarizes one PDF extraction run, including which pages
// were judged sparse and how the OCR fallback fared per page.
type PdfExtractionReport struct {
	PdfPath               string    `json:"pdfPath"`
	GeneratedAt           time.Time `json:"generatedAt"`
	TotalPages            int       `json:"totalPages"`
	QuestionsExtracted    int       `json:"questionsExtracted"`
	NeedsReviewCount      int       `json:"needsReviewCount"`
	MissingAnswerKeyCount int       `json:"missingAnswerKeyCount"`
	SparseTextPages       []int     `json:"sparseTextPages"`
	OcrUsedPages          []int     `json:"ocrUsedPages"`
	OcrFailedPages        []int     `json:"ocrFailedPages"`
}

// SignsExtractionReport summarizes a combined flashcards + quiz signs run.
// UnresolvedQuizAnswers is kept separate from QuizSkipped: the former means the
// answer key was bad, the latter that required fields were missing.
type SignsExtractionReport struct {
	FlashcardsCsvPath     string    `json:"flashcardsCsvPath"`
	QuizCsvPath           string    `json:"quizCsvPath"`
	GeneratedAt           time.Time `json:"generatedAt"`
	FlashcardsTotalRows   int       `json:"flashcardsTotalRows"`
	FlashcardsExtracted   int       `json:"flashcardsExtracted"`
	FlashcardsSkipped     int       `json:"flashcardsSkipped"`
	QuizTotalRows         int       `json:"quizTotalRows"`
	QuizExtracted         int       `json:"quizExtracted"`
	QuizSkipped           int       `json:"quizSkipped"`
	UnresolvedQuizAnswers int       `json:"unresolvedQuizAnswers"`
	MissingImageCount     int       `json:"missingImageCount"`
	ImagesSynced          bool      `json:"imagesSynced"`
}
