// Package game defines the quiz/word-game kinds, their generation prompts and
// the marker patterns used to recover structured answers from free-form
// model output. Adding a new game kind means adding a table entry here.
package game

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies one of the scripted mini-games.
type Kind int

const (
	// Quiz is the topic Q&A flow (A-D multiple choice).
	Quiz Kind = iota
	// WordGuess asks the model to describe a hidden noun.
	WordGuess
	// FindTheLie presents three statements, one of them false.
	FindTheLie
	// ContinueStory presents a story intro with three numbered continuations.
	ContinueStory
	// Charade is a three-part riddle with a single word answer.
	Charade
)

// String returns the game's display name, also used as its stats key.
func (k Kind) String() string {
	switch k {
	case Quiz:
		return "Викторина"
	case WordGuess:
		return "Угадай слово"
	case FindTheLie:
		return "Найди ложь"
	case ContinueStory:
		return "Продолжи историю"
	case Charade:
		return "Шарада"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Definition describes one game kind: the prompt sent to the completion
// upstream, the tolerant marker pattern that locates the correct answer in
// the raw generation, and how a user guess is checked against it.
type Definition struct {
	Kind   Kind
	Button string // menu selector text
	Prompt string

	// answer locates the marker line; capture group 1 is the raw answer
	// value, absent for kinds that only validate well-formedness.
	answer *regexp.Regexp
	// leadIns are presentation labels stripped from the display text.
	leadIns *regexp.Regexp
	// keepMarkerLine leaves the matched line in the display text.
	keepMarkerLine bool

	normalize func(string) string
	check     func(guess, stored string) bool
}

// Marker patterns are case-insensitive and tolerate label synonyms and
// either ":" or "-" separators, because the upstream model does not
// guarantee literal phrasing. They are anchored to a single line to avoid
// matching similar words in the body text.
var (
	quizAnswerRe = regexp.MustCompile(`(?im)^.{0,40}?(?:правильный ответ|верный ответ|ответ)\s*[:\-]\s*\(?([ABCDАВС])\)?\s*\.?\s*$`)
	wordAnswerRe = regexp.MustCompile(`(?im)^.{0,20}?(?:загаданное слово|слово|ответ)\s*[:\-]\s*(.+?)\s*$`)
	lieAnswerRe  = regexp.MustCompile(`(?im)^.{0,20}?(?:ложь|неправда)\s*[:\-]?\s*№?\s*([1-3])\b.*$`)
	storyIntroRe = regexp.MustCompile(`(?im)^\s*(?:начало|история)\s*[:\-]\s*\S.*$`)
	charadeRe    = regexp.MustCompile(`(?im)^.{0,20}?(?:ответ|отгадка)\s*[:\-]\s*(.+?)\s*$`)

	quizLeadInRe  = regexp.MustCompile(`(?i)^(?:вопрос)\s*[:\-]\s*`)
	descLeadInRe  = regexp.MustCompile(`(?i)^(?:описание)\s*[:\-]\s*`)
	storyChoiceRe = regexp.MustCompile(`^[1-3]$`)
)

// cyrillicHomoglyphs maps look-alike Cyrillic option letters to Latin so a
// guess typed in either alphabet checks equal.
var cyrillicHomoglyphs = strings.NewReplacer("А", "A", "В", "B", "С", "C")

// NormalizeLetter uppercases a single-letter quiz answer and folds Cyrillic
// homoglyphs to Latin.
func NormalizeLetter(s string) string {
	return cyrillicHomoglyphs.Replace(strings.ToUpper(strings.TrimSpace(s)))
}

// NormalizeWord uppercases and trims a free-text answer.
func NormalizeWord(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

var definitions = map[Kind]*Definition{
	Quiz: {
		Kind: Quiz,
		// Prompt is built per topic, see QuizPrompt.
		answer:    quizAnswerRe,
		leadIns:   quizLeadInRe,
		normalize: NormalizeLetter,
		check: func(guess, stored string) bool {
			return NormalizeLetter(guess) == stored
		},
	},
	WordGuess: {
		Kind:   WordGuess,
		Button: "Угадай слово",
		Prompt: `Загадай одно существительное (например: тигр, самолёт, лампа и т.д.). Опиши его так, чтобы пользователь попытался угадать, что это. Не называй само слово. В конце добавь строку "Загаданное слово: ...".
Формат:
Описание: ...
Загаданное слово: ...`,
		answer:    wordAnswerRe,
		leadIns:   descLeadInRe,
		normalize: NormalizeWord,
		check: func(guess, stored string) bool {
			return NormalizeWord(guess) == stored
		},
	},
	FindTheLie: {
		Kind:   FindTheLie,
		Button: "Найди ложь",
		Prompt: `Придумай три коротких утверждения на любые темы. Два из них должны быть правдой, одно — ложью. В конце укажи, какое из них ложь (например: "Ложь: №2").
Формат:
1. ...
2. ...
3. ...
Ложь: №...`,
		answer:    lieAnswerRe,
		normalize: strings.TrimSpace,
		check: func(guess, stored string) bool {
			return strings.TrimSpace(guess) == stored
		},
	},
	ContinueStory: {
		Kind:   ContinueStory,
		Button: "Продолжи историю",
		Prompt: `Придумай короткое начало истории и три возможных продолжения. Варианты продолжения пронумеруй.
Формат:
Начало: ...
1. ...
2. ...
3. ...`,
		// The intro marker only confirms the generation is well-formed; the
		// full text is shown and any of 1-3 counts as a valid choice.
		answer:         storyIntroRe,
		keepMarkerLine: true,
		normalize:      strings.TrimSpace,
		check: func(guess, _ string) bool {
			return storyChoiceRe.MatchString(strings.TrimSpace(guess))
		},
	},
	Charade: {
		Kind:   Charade,
		Button: "Шарада",
		Prompt: `Придумай одну шараду (загадку), которая состоит из трех частей, каждая часть даёт подсказку, чтобы угадать слово. В конце напиши ответ.
Формат:
1) ...
2) ...
3) ...
Ответ: ...`,
		answer:    charadeRe,
		normalize: NormalizeWord,
		check: func(guess, stored string) bool {
			return NormalizeWord(guess) == stored
		},
	},
}

// Def returns the definition for a kind.
func Def(kind Kind) *Definition {
	return definitions[kind]
}

// ByButton looks up a playable game kind by its menu selector text.
// The quiz flow is started by topic, not by button, and is not listed here.
func ByButton(text string) (Kind, bool) {
	for kind, def := range definitions {
		if def.Button != "" && def.Button == text {
			return kind, true
		}
	}
	return 0, false
}

// QuizTopics are the selectable quiz topics, in menu order.
var QuizTopics = []string{"История", "Математика", "Английский язык"}

// IsQuizTopic reports whether text selects a quiz topic.
func IsQuizTopic(text string) bool {
	for _, t := range QuizTopics {
		if t == text {
			return true
		}
	}
	return false
}

// QuizPrompt builds the topic-specific quiz generation prompt.
func QuizPrompt(topic string) string {
	return fmt.Sprintf(`Создай 1 вопрос с 4 вариантами ответа (A, B, C, D) по теме "%s". В конце отдельной строкой укажи правильный ответ в виде "Правильный ответ: X".`, topic)
}

// Check compares a user guess against the stored expected answer.
func (d *Definition) Check(guess, stored string) bool {
	return d.check(guess, stored)
}
