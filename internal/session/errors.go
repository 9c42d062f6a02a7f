package session

import (
	"errors"

	"github.com/abhisek/vocabdrill/internal/vocab"
)

var (
	// ErrWrongPhase is returned when an operation is not valid in the
	// session's current phase.
	ErrWrongPhase = errors.New("operation not valid in current session phase")

	// ErrUnknownSession is returned for a handle the registry does not hold.
	ErrUnknownSession = errors.New("unknown session")

	// ErrInvalidCount is returned when fewer than one item is requested.
	ErrInvalidCount = errors.New("requested count must be at least 1")
)

// Skippable reports whether a CurrentPrompt error means the item cannot
// be exercised, so the caller should Skip it and carry on.
func Skippable(err error) bool {
	return errors.Is(err, vocab.ErrNoContextAvailable) ||
		errors.Is(err, vocab.ErrMissingContext) ||
		errors.Is(err, vocab.ErrMalformedExerciseData)
}
