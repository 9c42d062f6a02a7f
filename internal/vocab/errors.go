package vocab

import "errors"

var (
	// ErrEmptyCourse is returned when a course has no items.
	ErrEmptyCourse = errors.New("course has no vocabulary items")

	// ErrMissingContext is returned when an exercise is requested without
	// the context, target word or translation it needs.
	ErrMissingContext = errors.New("missing context for exercise")

	// ErrNoContextAvailable is returned when an item has no context entries.
	ErrNoContextAvailable = errors.New("no context available for item")

	// ErrMalformedExerciseData is returned when the stored context cannot
	// produce an exercise, e.g. the target word is not in the sentence.
	ErrMalformedExerciseData = errors.New("malformed exercise data")

	ErrInvalidRecord = errors.New("invalid record")
	ErrNotFound      = errors.New("not found")
)
