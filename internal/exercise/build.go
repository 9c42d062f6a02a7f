package exercise

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/vocabdrill/internal/morphology"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

var sentenceStartArticle = regexp.MustCompile(`(?i)^a/an\b`)

// BuildGapFill masks the target word in the context sentence. The mask
// keeps the first letter and shows one "_" per remaining letter, so the
// learner knows the word length. The translation follows the mask.
//
//	"I walk to school." / walk / caminar  ->  "I w _ _ _ (caminar) to school."
func BuildGapFill(item vocab.Item, entry vocab.ContextEntry) (*Exercise, error) {
	target := strings.TrimSpace(entry.TargetWord)
	if entry.Sentence == "" || target == "" || strings.TrimSpace(item.Translation) == "" {
		return nil, fmt.Errorf("gap-fill for item %s: %w", item.ID, vocab.ErrMissingContext)
	}

	start, end, atStart := locateTarget(entry.Sentence, target)
	if start < 0 {
		return nil, fmt.Errorf("gap-fill for item %s: target %q not in context: %w",
			item.ID, target, vocab.ErrMalformedExerciseData)
	}

	first, size := utf8.DecodeRuneInString(target)
	if atStart {
		first = unicode.ToUpper(first)
	}
	rest := utf8.RuneCountInString(target[size:])
	mask := string(first) + strings.Repeat(" _", rest)

	prompt := entry.Sentence[:start] + mask + " (" + strings.TrimSpace(item.Translation) + ")" + entry.Sentence[end:]

	return &Exercise{
		Kind:        KindGapFill,
		ItemID:      item.ID,
		EntryID:     entry.ID,
		Prompt:      prompt,
		Answer:      target,
		Context:     entry.Sentence,
		Translation: item.Translation,
	}, nil
}

// BuildMultipleChoice blanks the target word and offers it among up to
// DistractorCount other words from the same course and part of speech.
// Candidates containing the item's own surface form are dropped. For
// nouns and verbs every distractor is inflected into the target's form.
// Missing distractors are padded with Placeholder. The options are
// shuffled with rng.
func BuildMultipleChoice(item vocab.Item, entry vocab.ContextEntry, candidates []string, rng *rand.Rand) (*Exercise, error) {
	target := strings.TrimSpace(entry.TargetWord)
	if entry.Sentence == "" || target == "" || item.CourseCode == "" || item.PartOfSpeech == "" {
		return nil, fmt.Errorf("multiple choice for item %s: %w", item.ID, vocab.ErrMissingContext)
	}

	prompt := rewriteArticle(entry.Sentence, target)
	loc := findWord(prompt, target)
	if loc == nil {
		return nil, fmt.Errorf("multiple choice for item %s: target %q not in context: %w",
			item.ID, target, vocab.ErrMalformedExerciseData)
	}
	prompt = prompt[:loc[0]] + Blank + prompt[loc[1]:]

	distractors := pickDistractors(item, target, candidates)
	if item.PartOfSpeech == vocab.PosNoun || item.PartOfSpeech == vocab.PosVerb {
		form := morphology.DetectForm(target, item.PartOfSpeech)
		for i, d := range distractors {
			distractors[i] = morphology.ApplyForm(d, form, item.PartOfSpeech)
		}
	}

	placeholders := DistractorCount - len(distractors)
	for range placeholders {
		distractors = append(distractors, Placeholder)
	}

	options := append([]string{target}, distractors...)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &Exercise{
		Kind:         KindMultipleChoice,
		ItemID:       item.ID,
		EntryID:      entry.ID,
		Prompt:       prompt,
		Answer:       target,
		Context:      entry.Sentence,
		Translation:  item.Translation,
		Options:      options,
		Placeholders: placeholders,
	}, nil
}

// pickDistractors keeps the first DistractorCount usable candidates.
func pickDistractors(item vocab.Item, target string, candidates []string) []string {
	surface := strings.ToLower(item.SurfaceForm)
	seen := map[string]bool{strings.ToLower(target): true}

	var out []string
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		lc := strings.ToLower(c)
		if c == "" || seen[lc] {
			continue
		}
		if surface != "" && strings.Contains(lc, surface) {
			continue
		}
		seen[lc] = true
		out = append(out, c)
		if len(out) == DistractorCount {
			break
		}
	}
	return out
}

// locateTarget returns the byte span of the target in sentence. A target
// the sentence starts with wins; otherwise the first whole-word match.
func locateTarget(sentence, target string) (start, end int, atStart bool) {
	if len(sentence) >= len(target) && strings.EqualFold(sentence[:len(target)], target) && boundedAt(sentence, 0, len(target)) {
		return 0, len(target), true
	}
	if loc := findWord(sentence, target); loc != nil {
		return loc[0], loc[1], false
	}
	return -1, -1, false
}

// findWord returns the span of the first case-insensitive occurrence of
// target that is not part of a longer word.
func findWord(s, target string) []int {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(target))
	for _, loc := range re.FindAllStringIndex(s, -1) {
		if boundedAt(s, loc[0], loc[1]) {
			return loc
		}
	}
	return nil
}

// rewriteArticle replaces "a"/"an" before the target with "a/an" so the
// article does not give the answer away.
func rewriteArticle(sentence, target string) string {
	re := regexp.MustCompile(`(?i)\b(?:a|an)\s+(` + regexp.QuoteMeta(target) + `)`)

	var b strings.Builder
	last := 0
	for _, m := range re.FindAllStringSubmatchIndex(sentence, -1) {
		if !boundedAt(sentence, m[2], m[3]) {
			continue
		}
		b.WriteString(sentence[last:m[0]])
		b.WriteString("a/an ")
		b.WriteString(sentence[m[2]:m[3]])
		last = m[1]
	}
	b.WriteString(sentence[last:])
	return sentenceStartArticle.ReplaceAllLiteralString(b.String(), "A/An")
}

func boundedAt(s string, start, end int) bool {
	if r, _ := utf8.DecodeLastRuneInString(s[:start]); start > 0 && isWordRune(r) {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(s[end:]); end < len(s) && isWordRune(r) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
