// Package morphology detects the inflected form of an English word and
// applies the same form to another word of the same part of speech, so
// that multiple-choice distractors agree with the gap they fill.
package morphology

import (
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/abhisek/vocabdrill/internal/vocab"
)

// Form is the surface form of a word.
type Form string

const (
	FormSingular      Form = "singular"
	FormPlural        Form = "plural"
	FormIng           Form = "ing"
	FormEd            Form = "ed"
	FormThirdSingular Form = "third_singular"
)

// DetectForm returns the form of word for the given part of speech.
// Verbs are classified by suffix; nouns are plural when pluralizing their
// singular reproduces them. Anything else is FormSingular.
func DetectForm(word string, pos vocab.PartOfSpeech) Form {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return FormSingular
	}

	switch pos {
	case vocab.PosVerb:
		switch {
		case strings.HasSuffix(w, "ing"):
			return FormIng
		case strings.HasSuffix(w, "ed"):
			return FormEd
		case strings.HasSuffix(w, "s") && inflect.Singularize(w) != w:
			return FormThirdSingular
		}
	case vocab.PosNoun:
		if inflect.Pluralize(inflect.Singularize(w)) == w {
			return FormPlural
		}
	}
	return FormSingular
}

// ApplyForm inflects word into form. Words of other parts of speech, and
// forms that do not apply to pos, are returned unchanged.
func ApplyForm(word string, form Form, pos vocab.PartOfSpeech) string {
	if word == "" {
		return word
	}

	switch pos {
	case vocab.PosVerb:
		switch form {
		case FormIng:
			return presentParticiple(word)
		case FormEd:
			return pastTense(word)
		case FormThirdSingular:
			return inflect.Singularize(word) + "s"
		}
	case vocab.PosNoun:
		if form == FormPlural {
			return inflect.Pluralize(word)
		}
	}
	return word
}

func presentParticiple(w string) string {
	switch {
	case droppableE(w):
		return w[:len(w)-1] + "ing"
	case doublesFinal(w):
		return w + w[len(w)-1:] + "ing"
	default:
		return w + "ing"
	}
}

func pastTense(w string) string {
	if n := len(w); lower(w[n-1]) == 'y' && (n < 2 || !isVowel(w[n-2])) {
		w = w[:n-1] + "i"
	}
	switch {
	case doublesFinal(w):
		return w + w[len(w)-1:] + "ed"
	case droppableE(w):
		return w + "d"
	default:
		return w + "ed"
	}
}

// droppableE reports a trailing e not preceded by e, i or y ("make", not "see").
func droppableE(w string) bool {
	n := len(w)
	if n < 2 || lower(w[n-1]) != 'e' {
		return false
	}
	switch lower(w[n-2]) {
	case 'e', 'i', 'y':
		return false
	}
	return true
}

// doublesFinal reports a single vowel followed by one final consonant
// ("stop", not "read"). w, x and y are never doubled.
func doublesFinal(w string) bool {
	n := len(w)
	if n < 2 {
		return false
	}
	last := lower(w[n-1])
	if last < 'a' || last > 'z' || isVowel(last) {
		return false
	}
	switch last {
	case 'w', 'x', 'y':
		return false
	}
	if !isVowel(w[n-2]) {
		return false
	}
	return n == 2 || !isVowel(w[n-3])
}

func isVowel(c byte) bool {
	switch lower(c) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
