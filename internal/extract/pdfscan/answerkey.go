package pdfscan

import (
	"regexp"
	"strconv"

	"qcm-extractor/internal/extract/arabictext"
)

var (
	// answerSectionPattern locates the answer-key section header; parsing
	// starts there, or from the top when no header exists.
	answerSectionPattern = regexp.MustCompile(`(?i)الإجابات|التصحيح|answer key|answers`)
	// answerPairPattern scans <number><separator?><option letter> pairs.
	answerPairPattern = regexp.MustCompile(`(\d{1,4})\s*[)\.\-:،]?\s*([A-Dأإابجد])`)
)

// ParseAnswerKey builds the question-number to option-id map from the trailing
// answer section of the concatenated document text. Later pairs for the same
// number overwrite earlier ones, matching a key that corrects itself.
func ParseAnswerKey(text string) map[int]string {
	answers := make(map[int]string)
	normalized := arabictext.NormalizeWhitespace(text)

	scope := normalized
	if loc := answerSectionPattern.FindStringIndex(normalized); loc != nil {
		scope = normalized[loc[0]:]
	}

	for _, m := range answerPairPattern.FindAllStringSubmatch(scope, -1) {
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if option := NormalizeOptionID(m[2]); option != "" {
			answers[number] = option
		}
	}
	return answers
}
