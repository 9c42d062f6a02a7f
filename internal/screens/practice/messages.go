package practice

import (
	"github.com/abhisek/vocabdrill/internal/exercise"
	"github.com/abhisek/vocabdrill/internal/session"
)

// sessionStartedMsg is sent when the session has been created.
type sessionStartedMsg struct {
	Handle string
	Err    error
}

// promptReadyMsg is sent when the exercise for the current item is built.
type promptReadyMsg struct {
	Exercise *exercise.Exercise
	Err      error
}

// answerGradedMsg is sent when the learner's answer has been graded.
type answerGradedMsg struct {
	Feedback *session.Feedback
	Err      error
}

// answerAppliedMsg is sent when a graded answer has been written to the
// learner's progress and the session moved on.
type answerAppliedMsg struct {
	Feedback *session.Feedback
	Err      error
}

// itemSkippedMsg is sent when an item without a usable exercise was skipped.
type itemSkippedMsg struct {
	Err error
}

// sessionDoneMsg is sent when the session completed or was abandoned.
type sessionDoneMsg struct {
	Summary *session.Summary
	Err     error
}
