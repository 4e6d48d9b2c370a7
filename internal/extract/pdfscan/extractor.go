package pdfscan

import (
	"fmt"
	"strings"
	"time"

	"qcm-extractor/internal/domain"
)

const (
	setID    = "exam-questions-ar-v1"
	setTitle = "أسئلة امتحان السياقة"
)

// minPromptRunes is the shortest prompt trusted without human review.
const minPromptRunes = 6

// buildQuestion assembles one question from a block. The answer key is looked
// up by the block's source number; a key entry pointing at a letter that was
// not parsed as a choice is discarded and the question flagged.
func buildQuestion(block Block, pageNumber int, answerKey map[int]string, sequence int) domain.Question {
	prompt, choices := parseChoices(block.Text)

	correct := ""
	if block.SourceNumber > 0 {
		correct = answerKey[block.SourceNumber]
	}

	needsReview := false
	if len([]rune(prompt)) < minPromptRunes || len(choices) < 2 {
		needsReview = true
	}
	if correct != "" && !hasChoice(choices, correct) {
		correct = ""
		needsReview = true
	}
	if correct == "" {
		needsReview = true
	}

	return domain.Question{
		ID:              fmt.Sprintf("q-%04d", sequence),
		Prompt:          prompt,
		Choices:         choices,
		CorrectChoiceID: correct,
		SourcePage:      pageNumber,
		SourceNumber:    block.SourceNumber,
		NeedsReview:     needsReview,
	}
}

func hasChoice(choices []domain.Choice, id string) bool {
	for _, c := range choices {
		if c.ID == id {
			return true
		}
	}
	return false
}

// BuildQuestionSet runs the full segmentation over the given pages: the answer
// key is parsed once from the concatenated text, then each page is split into
// blocks independently. Question ids follow a single global sequence in page
// order, then in-page block order.
func BuildQuestionSet(pages []Page) domain.QuestionSet {
	var all []string
	for _, page := range pages {
		all = append(all, page.Text)
	}
	answerKey := ParseAnswerKey(strings.Join(all, "\n\n"))

	var questions []domain.Question
	sequence := 1
	for _, page := range pages {
		for _, block := range SplitBlocks(page.Text) {
			questions = append(questions, buildQuestion(block, page.Number, answerKey, sequence))
			sequence++
		}
	}

	return domain.QuestionSet{
		ID:         setID,
		Title:      setTitle,
		Language:   "ar",
		Direction:  "rtl",
		Questions:  questions,
		ImportedAt: time.Now().UTC(),
	}
}
