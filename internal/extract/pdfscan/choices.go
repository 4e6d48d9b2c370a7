package pdfscan

import (
	"regexp"
	"strings"

	"qcm-extractor/internal/domain"
)

// choiceMarkerPattern matches an option marker at a line start: a single Latin
// or Arabic option letter followed by a separator.
var choiceMarkerPattern = regexp.MustCompile(`(?:^|\n)\s*([A-Da-dأإابجد])\s*[)\.\-:،]\s*`)

type marker struct {
	id    string
	start int
	end   int
}

// parseChoices slices a block into prompt and choices. With fewer than two
// recognizable markers the whole block is prompt and there are no choices.
// Duplicate marker letters keep their first occurrence only, so a spurious
// repeat cannot break the answer-key cross-reference.
func parseChoices(blockText string) (string, []domain.Choice) {
	var markers []marker
	for _, loc := range choiceMarkerPattern.FindAllStringSubmatchIndex(blockText, -1) {
		id := NormalizeOptionID(blockText[loc[2]:loc[3]])
		if id == "" {
			continue
		}
		markers = append(markers, marker{id: id, start: loc[0], end: loc[1]})
	}

	if len(markers) < 2 {
		return strings.TrimSpace(blockText), nil
	}

	prompt := strings.TrimSpace(blockText[:markers[0].start])

	choices := make([]domain.Choice, 0, len(markers))
	seen := make(map[string]bool, len(markers))
	for i, mk := range markers {
		end := len(blockText)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		if seen[mk.id] {
			continue
		}
		seen[mk.id] = true
		choices = append(choices, domain.Choice{
			ID:   mk.id,
			Text: strings.TrimSpace(blockText[mk.end:end]),
		})
	}

	return prompt, choices
}
