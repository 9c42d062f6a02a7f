package exercise

import (
	"strconv"
	"strings"
)

// CheckAnswer compares the learner's input against the correct answer.
//
// Normalization rules:
// - Whitespace is trimmed
// - Comparison is case-insensitive and exact (no fuzzy matching)
// - For multiple choice: matches the option text, its letter (A-E) or
//   its 1-based index
func CheckAnswer(learnerAnswer string, ex *Exercise) bool {
	learnerAnswer = strings.TrimSpace(learnerAnswer)
	if learnerAnswer == "" || ex == nil {
		return false
	}

	if ex.Kind == KindMultipleChoice {
		if opt, ok := resolveOption(learnerAnswer, ex.Options); ok {
			learnerAnswer = opt
		}
	}
	return normalize(learnerAnswer) == normalize(ex.Answer)
}

// ResolveAnswer maps a multiple-choice letter or index to the option text.
// Other input is returned trimmed.
func ResolveAnswer(learnerAnswer string, ex *Exercise) string {
	learnerAnswer = strings.TrimSpace(learnerAnswer)
	if ex != nil && ex.Kind == KindMultipleChoice {
		if opt, ok := resolveOption(learnerAnswer, ex.Options); ok {
			return opt
		}
	}
	return learnerAnswer
}

func resolveOption(answer string, options []string) (string, bool) {
	if len(answer) == 1 {
		c := answer[0] &^ 0x20 // upper-case ASCII letters
		if c >= 'A' && int(c-'A') < len(options) {
			return options[c-'A'], true
		}
	}
	if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= len(options) {
		return options[idx-1], true
	}
	return "", false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
