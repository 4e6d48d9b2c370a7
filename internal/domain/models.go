package domain

import "time"

// Choice is one answer option of a question. IDs are stable letter labels
// ("A".."D", falling back to "OPT{n}" for wider rows) assigned at extraction
// time and never changed afterwards.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"textAr"`
}

// Question is an extracted multiple-choice question. CorrectChoiceID is empty
// when no answer could be resolved; SourceNumber is zero when the source did
// not carry a parseable question number.
type Question struct {
	ID              string   `json:"id"`
	Prompt          string   `json:"promptAr"`
	Choices         []Choice `json:"choices"`
	CorrectChoiceID string   `json:"correctChoiceId,omitempty"`
	SourcePage      int      `json:"sourcePage"`
	SourceNumber    int      `json:"sourceNumber,omitempty"`
	NeedsReview     bool     `json:"needsReview"`
	Category        string   `json:"category,omitempty"`
	QuestionType    string   `json:"questionType,omitempty"`
	SignPath        string   `json:"signPath,omitempty"`
}

// QuestionSet is the aggregate produced by one extraction run.
type QuestionSet struct {
	ID         string     `json:"id"`
	Title      string     `json:"titleAr"`
	Language   string     `json:"language"`
	Direction  string     `json:"direction"`
	Questions  []Question `json:"questions"`
	ImportedAt time.Time  `json:"importedAt"`
}

// SignFlashcard is a single road-sign study card.
type SignFlashcard struct {
	ID        string `json:"id"`
	SourceID  int    `json:"sourceId"`
	Type      string `json:"type"`
	Name      string `json:"nameAr"`
	ImagePath string `json:"imagePath"`
}

// SignFlashcardSet groups flashcards extracted from one CSV.
type SignFlashcardSet struct {
	ID         string          `json:"id"`
	Title      string          `json:"titleAr"`
	Language   string          `json:"language"`
	Direction  string          `json:"direction"`
	Cards      []SignFlashcard `json:"cards"`
	ImportedAt time.Time       `json:"importedAt"`
}

// SignQuizQuestion is a road-sign quiz question. CorrectOptionIndex is always
// a valid index into Options; rows that cannot resolve one are dropped by the
// mapper rather than emitted.
type SignQuizQuestion struct {
	ID                 string   `json:"id"`
	SourceID           int      `json:"sourceId"`
	Type               string   `json:"type"`
	ImagePath          string   `json:"imagePath"`
	Options            []string `json:"optionsAr"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
	CorrectAnswer      string   `json:"correctAnswerAr"`
}

// SignQuizSet groups sign quiz questions extracted from one CSV.
type SignQuizSet struct {
	ID         string             `json:"id"`
	Title      string             `json:"titleAr"`
	Language   string             `json:"language"`
	Direction  string             `json:"direction"`
	Questions  []SignQuizQuestion `json:"questions"`
	ImportedAt time.Time          `json:"importedAt"`
}
