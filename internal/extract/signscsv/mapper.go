// Package signscsv maps the two road-sign spreadsheets (flashcards and quiz)
// into their respective sets. Both share the CSV tokenizer and compare-key
// normalization with the exam pipeline; unlike the exam mapper they do check
// the filesystem for sign images, via ImageResolver.
package signscsv

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"qcm-extractor/internal/domain"
	"qcm-extractor/internal/extract/arabictext"
	"qcm-extractor/internal/extract/csvtable"
)

const (
	flashcardSetID    = "road-signs-flashcards-ar-v1"
	flashcardSetTitle = "بطاقات إشارات السير"
	quizSetID         = "road-signs-quiz-ar-v1"
	quizSetTitle      = "اختبار إشارات السير"
)

// FlashcardResult carries the set plus the counters the signs report needs.
type FlashcardResult struct {
	Set           domain.SignFlashcardSet
	TotalRows     int
	Skipped       int
	MissingImages int
}

// QuizResult separates rows dropped for missing fields (Skipped) from rows
// dropped because no correct option could be resolved (UnresolvedAnswers);
// the distinction tells bad data apart from a bad answer key.
type QuizResult struct {
	Set               domain.SignQuizSet
	TotalRows         int
	Skipped           int
	UnresolvedAnswers int
	MissingImages     int
}

// BuildFlashcards maps the flashcards CSV. Rows missing a positive numeric ID,
// a type, or an Arabic name are skipped and counted.
func BuildFlashcards(csvText string, images ImageResolver) (FlashcardResult, error) {
	rows := csvtable.Rows(csvText)
	if len(rows) == 0 {
		return FlashcardResult{}, domain.ErrNoHeaderRow
	}
	records := csvtable.Records(rows)

	result := FlashcardResult{TotalRows: len(records)}
	cards := make([]domain.SignFlashcard, 0, len(records))
	for i, record := range records {
		sourceID := parseSourceID(record["ID"])
		signType := strings.TrimSpace(record["Type"])
		name := strings.TrimSpace(record["Name in Arabic"])
		if sourceID <= 0 || signType == "" || name == "" {
			result.Skipped++
			continue
		}

		imagePath, found := images.Resolve(sourceID)
		if !found {
			result.MissingImages++
		}

		cards = append(cards, domain.SignFlashcard{
			ID:        fmt.Sprintf("sf-%04d", i+1),
			SourceID:  sourceID,
			Type:      signType,
			Name:      name,
			ImagePath: imagePath,
		})
	}

	result.Set = domain.SignFlashcardSet{
		ID:         flashcardSetID,
		Title:      flashcardSetTitle,
		Language:   "ar",
		Direction:  "rtl",
		Cards:      cards,
		ImportedAt: time.Now().UTC(),
	}
	return result, nil
}

// BuildQuiz maps the quiz CSV. A retained question always has a valid
// CorrectOptionIndex; rows that cannot resolve one are dropped, not flagged.
func BuildQuiz(csvText string, images ImageResolver) (QuizResult, error) {
	rows := csvtable.Rows(csvText)
	if len(rows) == 0 {
		return QuizResult{}, domain.ErrNoHeaderRow
	}
	records := csvtable.Records(rows)

	result := QuizResult{TotalRows: len(records)}
	questions := make([]domain.SignQuizQuestion, 0, len(records))
	for i, record := range records {
		sourceID := parseSourceID(record["ID"])
		signType := strings.TrimSpace(record["Type"])
		options := collectOptions(record)
		correctIndex := resolveCorrectOptionIndex(record, options)

		if sourceID <= 0 || signType == "" || len(options) < 2 {
			result.Skipped++
			continue
		}
		if correctIndex < 0 {
			result.UnresolvedAnswers++
			continue
		}

		imagePath, found := images.Resolve(sourceID)
		if !found {
			result.MissingImages++
		}

		answer := strings.TrimSpace(record["Correct Answer"])
		if answer == "" {
			answer = options[correctIndex]
		}

		questions = append(questions, domain.SignQuizQuestion{
			ID:                 fmt.Sprintf("sq-%04d", i+1),
			SourceID:           sourceID,
			Type:               signType,
			ImagePath:          imagePath,
			Options:            options,
			CorrectOptionIndex: correctIndex,
			CorrectAnswer:      answer,
		})
	}

	result.Set = domain.SignQuizSet{
		ID:         quizSetID,
		Title:      quizSetTitle,
		Language:   "ar",
		Direction:  "rtl",
		Questions:  questions,
		ImportedAt: time.Now().UTC(),
	}
	return result, nil
}

func parseSourceID(value string) int {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func collectOptions(record csvtable.Record) []string {
	options := make([]string, 0, 3)
	for _, column := range []string{"Option 1", "Option 2", "Option 3"} {
		if v := strings.TrimSpace(record[column]); v != "" {
			options = append(options, v)
		}
	}
	return options
}

// resolveCorrectOptionIndex mirrors the exam mapper's index-first strategy but
// returns a 0-based index into options, or -1 when unresolvable.
func resolveCorrectOptionIndex(record csvtable.Record, options []string) int {
	indexRaw := strings.TrimSpace(record["Index of Correct Answer"])
	if index, err := strconv.Atoi(indexRaw); err == nil && index >= 1 && index <= len(options) {
		return index - 1
	}

	answer := strings.TrimSpace(record["Correct Answer"])
	if answer == "" {
		return -1
	}
	target := arabictext.CompareKey(answer)
	for i, option := range options {
		if arabictext.CompareKey(option) == target {
			return i
		}
	}
	return -1
}
