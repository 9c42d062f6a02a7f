package session

import (
	"time"

	"github.com/abhisek/vocabdrill/internal/exercise"
	"github.com/abhisek/vocabdrill/internal/mastery"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseIdle       Phase = iota // Not started
	PhaseActive                  // Waiting for an answer to the current item
	PhaseFeedback                // Answer graded, waiting for a rating or Next
	PhaseFinalizing              // All items answered, counter increment pending
	PhaseCompleted               // Counter incremented
	PhaseAbandoned               // Dropped before completion
)

var phaseNames = [...]string{"idle", "active", "feedback", "finalizing", "completed", "abandoned"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// State tracks the runtime state of one session.
type State struct {
	// ID is the UUID of the session, recorded on every event.
	ID string

	UserID     string
	CourseCode string

	// Items is the ordered selection; Requested == len(Items).
	Items     []SelectedItem
	Requested int

	// Index is the position of the current item in Items.
	Index int

	// CorrectCount is the number of correct answers so far.
	CorrectCount int

	// Answered and Skipped count the items moved past so far.
	Answered int
	Skipped  int

	Phase Phase

	// Exercise is the prepared exercise for Index, nil until requested.
	Exercise *exercise.Exercise

	// Pending is the feedback of the last graded answer while in
	// PhaseFeedback.
	Pending *Feedback

	// Results tracks per-item outcomes for the summary.
	Results map[string]*ItemResult

	StartTime time.Time

	// PromptTime is when the current exercise was built.
	PromptTime time.Time

	// EndTime is set when the session completes or is abandoned.
	EndTime time.Time
}

// Current returns the current item, or nil past the end of the list.
func (s *State) Current() *SelectedItem {
	if s.Index < 0 || s.Index >= len(s.Items) {
		return nil
	}
	return &s.Items[s.Index]
}

// Feedback is the result of grading one answer.
type Feedback struct {
	ItemID        string
	Correct       bool
	LearnerAnswer string
	CorrectAnswer string

	// NeedsRating is true when the learner must rate the difficulty
	// before moving on; false when Advance is expected.
	NeedsRating bool

	// Transition is set once the answer has been applied to mastery state.
	Transition *mastery.StateTransition
}
