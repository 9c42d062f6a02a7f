package store

import (
	"context"
	"time"

	"github.com/abhisek/vocabdrill/internal/vocab"
)

// ImportResult reports what an import changed.
type ImportResult struct {
	Items    int // items inserted or updated
	Contexts int // new context entries
}

// VocabularyRepo provides read access to vocabulary items and their
// contexts, and bulk import.
type VocabularyRepo interface {
	// Import upserts items by item id and adds contexts that are not
	// already stored, in one transaction.
	Import(ctx context.Context, items []vocab.Item, contexts []vocab.ContextEntry) (ImportResult, error)

	// GetItem returns the item with the given id, or vocab.ErrNotFound.
	GetItem(ctx context.Context, itemID string) (vocab.Item, error)

	// ItemsByCourse returns the items of a course in import order.
	ItemsByCourse(ctx context.Context, courseCode string) ([]vocab.Item, error)

	// ContextsByItem returns every context entry of an item.
	ContextsByItem(ctx context.Context, itemID string) ([]vocab.ContextEntry, error)

	// CandidateDistractors returns up to limit distinct surface forms of
	// other items in the course with the same part of speech. A limit of
	// zero or less returns them all.
	CandidateDistractors(ctx context.Context, courseCode string, pos vocab.PartOfSpeech, excludeItemID string, limit int) ([]string, error)

	// Courses returns every course code with at least one item.
	Courses(ctx context.Context) ([]string, error)
}

// ProgressFunc computes the new progress of an item from the stored one
// and the user's completed session count.
type ProgressFunc func(p vocab.Progress, sessionsCompleted int) (vocab.Progress, error)

// ProgressRepo manages per-user mastery state and session counters.
type ProgressRepo interface {
	// ItemsWithProgress returns every item of a course joined with the
	// user's progress. Items without a record carry NotStarted progress.
	ItemsWithProgress(ctx context.Context, userID, courseCode string) ([]vocab.ItemProgress, error)

	// GetProgress returns the user's progress on an item, or vocab.ErrNotFound.
	GetProgress(ctx context.Context, userID, itemID string) (vocab.Progress, error)

	// UpsertProgress stores a progress record.
	UpsertProgress(ctx context.Context, p vocab.Progress) error

	// UpdateProgress reads the session counter and the progress record,
	// applies fn and writes the result in one transaction. It returns
	// vocab.ErrNotFound when no record exists.
	UpdateProgress(ctx context.Context, userID, itemID, courseCode string, fn ProgressFunc) (vocab.Progress, error)

	// InitializeProgress creates NotStarted records for every item of the
	// course the user has none for, and the session counter at zero.
	// It returns how many progress records were created.
	InitializeProgress(ctx context.Context, userID, courseCode string) (int, error)

	// SessionCounter returns the number of sessions the user completed in
	// the course, 0 when none.
	SessionCounter(ctx context.Context, userID, courseCode string) (int, error)

	// IncrementSessionCounter adds one completed session, creating the
	// counter at 1 if absent, and returns the new value.
	IncrementSessionCounter(ctx context.Context, userID, courseCode string) (int, error)
}

// AnswerEventData captures one processed answer.
type AnswerEventData struct {
	SessionID      string
	UserID         string
	CourseCode     string
	ItemID         string
	Kind           string
	Prompt         string
	CorrectAnswer  string
	LearnerAnswer  string
	Correct        bool
	Difficulty     string
	FromStatus     string
	ToStatus       string
	IntervalBefore int
	IntervalAfter  int
	TimeMs         int
}

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID       string
	UserID          string
	CourseCode      string
	Action          string // "start", "end" or "abandon"
	Requested       int
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// SessionRecord is a stored session event.
type SessionRecord struct {
	SessionEventData
	Sequence  int64
	Timestamp time.Time
}

// Accuracy summarizes recorded answers.
type Accuracy struct {
	Total   int
	Correct int
}

// Percent returns the share of correct answers, 0 when there are none.
func (a Accuracy) Percent() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total) * 100
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records an answer event.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a session lifecycle event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AnswerAccuracy returns answer totals for a user in a course.
	AnswerAccuracy(ctx context.Context, userID, courseCode string) (Accuracy, error)

	// RecentSessions returns the latest session events of a user in a
	// course, newest first.
	RecentSessions(ctx context.Context, userID, courseCode string, limit int) ([]SessionRecord, error)
}
