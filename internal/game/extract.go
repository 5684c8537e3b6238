package game

import (
	"errors"
	"strings"
)

// ErrNoMarker is returned when the generated text contains no recognizable
// answer marker. The caller must not create a session expecting an answer.
var ErrNoMarker = errors.New("no answer marker found in generated text")

// Extraction is the result of parsing one generation: the user-facing
// question text and the normalized expected answer.
type Extraction struct {
	// Question is the raw text with the marker line stripped, ready to show.
	Question string
	// Answer is the normalized correct-answer token: an uppercase word, a
	// digit "1"-"3" or a letter "A"-"D". Empty for ContinueStory, where any
	// of "1"-"3" is a structurally valid choice.
	Answer string
}

// Extract recovers the structured answer and the display text from raw
// generated text for the given game kind. It is a pure function of its
// inputs: identical text yields identical extractions.
func Extract(kind Kind, raw string) (Extraction, error) {
	def, ok := definitions[kind]
	if !ok || def.answer == nil {
		return Extraction{}, ErrNoMarker
	}

	m := def.answer.FindStringSubmatch(raw)
	if m == nil {
		return Extraction{}, ErrNoMarker
	}

	var answer string
	if len(m) > 1 {
		answer = def.normalize(m[1])
		if answer == "" {
			return Extraction{}, ErrNoMarker
		}
	}

	question := raw
	if !def.keepMarkerLine {
		question = dropMarkerLines(raw, def)
	}

	return Extraction{Question: strings.TrimSpace(question), Answer: answer}, nil
}

// dropMarkerLines removes every line matched by the kind's marker pattern
// and strips presentation lead-ins from the remaining lines.
func dropMarkerLines(raw string, def *Definition) string {
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if def.answer.MatchString(line) {
			continue
		}
		if def.leadIns != nil {
			line = def.leadIns.ReplaceAllString(line, "")
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
