package exercise

// Kind is the type of exercise shown to the learner.
type Kind string

const (
	// KindGapFill masks the target word and the learner types it.
	KindGapFill Kind = "gapfill"

	// KindMultipleChoice blanks the target word and the learner picks
	// it from five options.
	KindMultipleChoice Kind = "mcq"
)

// Kinds lists every exercise kind, in the order used for random choice.
var Kinds = []Kind{KindGapFill, KindMultipleChoice}

const (
	// Blank replaces the target word in a multiple-choice prompt.
	Blank = "__________"

	// Placeholder pads the option list when too few distractors exist.
	Placeholder = "-------"

	// DistractorCount is the number of wrong options in a multiple-choice exercise.
	DistractorCount = 4
)

// Exercise is a rendered question ready for display. It carries data
// only; markup is up to the front end.
type Exercise struct {
	Kind Kind

	ItemID  string
	EntryID int64

	// Prompt is the context sentence with the target masked or blanked.
	Prompt string

	// Answer is the target word as it appears in the context.
	Answer string

	// Context is the unmasked sentence, shown with feedback.
	Context string

	// Translation is the item's translation. Gap-fill prompts include it.
	Translation string

	// Options holds the shuffled choices for KindMultipleChoice, the
	// correct answer among them. Empty for gap-fill.
	Options []string

	// Placeholders counts padded options. Non-zero means the course had
	// fewer than DistractorCount usable distractors.
	Placeholders int
}

// OptionLabel returns the display label for the option at index i (A, B, ...).
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

// CorrectIndex returns the index of the correct option, or -1.
func (e *Exercise) CorrectIndex() int {
	for i, opt := range e.Options {
		if normalize(opt) == normalize(e.Answer) {
			return i
		}
	}
	return -1
}
