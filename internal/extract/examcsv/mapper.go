// Package examcsv maps the driving-exam answer spreadsheet into a QuestionSet.
// The source CSV is human-authored: headers vary, answer keys are given either
// as a 1-based index or as free text, and the Type column is sometimes abused
// to repeat the category code.
package examcsv

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"qcm-extractor/internal/domain"
	"qcm-extractor/internal/extract/arabictext"
	"qcm-extractor/internal/extract/csvtable"
)

const (
	setID    = "exam-questions-ar-v1"
	setTitle = "أسئلة امتحان السياقة"
)

// promptColumns are tried in order; the first non-empty value wins.
var promptColumns = []string{"Question Text (نص السؤال)", "Question Text"}

// reservedTypeCodes are category codes the CSV author sometimes re-enters in
// the Type column by mistake; they are suppressed rather than surfaced as a
// question type.
var reservedTypeCodes = map[string]bool{"A": true, "BC": true, "C": true, "G": true}

var (
	optionColumnPattern = regexp.MustCompile(`(?i)^option\s+\d+$`)
	nonDigitPattern     = regexp.MustCompile(`\D`)
	urlPattern          = regexp.MustCompile(`(?i)^https?://`)
)

// BuildQuestionSet transforms raw CSV text into a QuestionSet and its report.
// Pure transform: no filesystem access, no side effects. Rows without a prompt
// are dropped entirely; everything else is emitted, flagged for review when the
// data is suspect.
func BuildQuestionSet(csvText string) (domain.QuestionSet, domain.CsvExtractionReport, error) {
	rows := csvtable.Rows(csvText)
	if len(rows) == 0 {
		return domain.QuestionSet{}, domain.CsvExtractionReport{}, domain.ErrNoHeaderRow
	}
	records := csvtable.Records(rows)

	questions := make([]domain.Question, 0, len(records))
	for i, record := range records {
		prompt := firstNonEmpty(record, promptColumns)
		if prompt == "" {
			continue
		}

		choices := extractChoices(record)
		correctChoiceID := resolveCorrectChoiceID(record, choices)
		category := normalizeCategory(record["Cat"])
		questionType := normalizeQuestionType(record["Type"], category)
		signPath := normalizeSignPath(record["Sign Path"])
		sourceNumber, _ := strconv.Atoi(strings.TrimSpace(record["ID"]))

		needsReview := len([]rune(prompt)) < 6 ||
			len(choices) < 2 ||
			correctChoiceID == "" ||
			(strings.EqualFold(questionType, "Signs") && signPath == "")

		questions = append(questions, domain.Question{
			ID:              fmt.Sprintf("q-%04d", i+1),
			Prompt:          prompt,
			Choices:         choices,
			CorrectChoiceID: correctChoiceID,
			SourcePage:      0,
			SourceNumber:    sourceNumber,
			NeedsReview:     needsReview,
			Category:        category,
			QuestionType:    questionType,
			SignPath:        signPath,
		})
	}

	now := time.Now().UTC()
	set := domain.QuestionSet{
		ID:         setID,
		Title:      setTitle,
		Language:   "ar",
		Direction:  "rtl",
		Questions:  questions,
		ImportedAt: now,
	}

	report := domain.CsvExtractionReport{
		GeneratedAt:        now,
		TotalRows:          len(records),
		QuestionsExtracted: len(questions),
		RowsSkipped:        len(records) - len(questions),
	}
	for _, q := range questions {
		if q.NeedsReview {
			report.NeedsReviewCount++
		}
		if q.CorrectChoiceID == "" {
			report.MissingAnswerKeyCount++
		}
		if strings.EqualFold(q.QuestionType, "Signs") {
			if q.SignPath != "" {
				report.SignsWithImageCount++
			} else {
				report.SignsMissingImageCount++
			}
		}
	}

	return set, report, nil
}

func firstNonEmpty(record csvtable.Record, columns []string) string {
	for _, column := range columns {
		if v := strings.TrimSpace(record[column]); v != "" {
			return v
		}
	}
	return ""
}

// extractChoices collects all "Option N" columns in numeric order and labels
// the non-empty ones A, B, C, D, then OPT{n}.
func extractChoices(record csvtable.Record) []domain.Choice {
	var keys []string
	for key := range record {
		if optionColumnPattern.MatchString(key) {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return optionColumnNumber(keys[i]) < optionColumnNumber(keys[j])
	})

	choices := make([]domain.Choice, 0, len(keys))
	for i, key := range keys {
		text := strings.TrimSpace(record[key])
		if text == "" {
			continue
		}
		choices = append(choices, domain.Choice{ID: choiceID(i), Text: text})
	}
	return choices
}

func optionColumnNumber(key string) int {
	n, _ := strconv.Atoi(nonDigitPattern.ReplaceAllString(key, ""))
	return n
}

func choiceID(index int) string {
	letters := []string{"A", "B", "C", "D"}
	if index < len(letters) {
		return letters[index]
	}
	return fmt.Sprintf("OPT%d", index+1)
}

// resolveCorrectChoiceID tries the 1-based index column first, then an exact
// compare-key match against the "Correct Answer" text, then gives up.
func resolveCorrectChoiceID(record csvtable.Record, choices []domain.Choice) string {
	indexRaw := strings.TrimSpace(record["Correct Answer Index"])
	if index, err := strconv.Atoi(indexRaw); err == nil && index >= 1 && index <= len(choices) {
		return choices[index-1].ID
	}

	answerText := strings.TrimSpace(record["Correct Answer"])
	if answerText == "" {
		return ""
	}
	target := arabictext.CompareKey(answerText)
	for _, choice := range choices {
		if arabictext.CompareKey(choice.Text) == target {
			return choice.ID
		}
	}
	return ""
}

func normalizeCategory(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// normalizeQuestionType title-cases the Type column and suppresses values that
// are really category codes leaking into the wrong column.
func normalizeQuestionType(value, category string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	formatted := upperFirst(strings.ToLower(trimmed))
	upper := strings.ToUpper(formatted)
	if reservedTypeCodes[upper] {
		return ""
	}
	if category != "" && upper == strings.ToUpper(category) {
		return ""
	}
	return formatted
}

func upperFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// normalizeSignPath re-roots relative sign paths under /assets/signs/.
// Absolute paths and URLs pass through untouched; backslashes are always
// normalized to forward slashes.
func normalizeSignPath(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	normalized := strings.ReplaceAll(trimmed, "\\", "/")
	if urlPattern.MatchString(normalized) || strings.HasPrefix(normalized, "/") {
		return normalized
	}

	normalized = strings.TrimPrefix(normalized, "./")
	for _, prefix := range []string{"public/assets/signs/", "assets/signs/", "signs/"} {
		if len(normalized) >= len(prefix) && strings.EqualFold(normalized[:len(prefix)], prefix) {
			normalized = normalized[len(prefix):]
		}
	}
	return "/assets/signs/" + normalized
}
