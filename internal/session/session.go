package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/vocabdrill/internal/exercise"
	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// Vocabulary is the part of store.VocabularyRepo the orchestrator needs.
type Vocabulary interface {
	ContextsByItem(ctx context.Context, itemID string) ([]vocab.ContextEntry, error)
	exercise.DistractorSource
}

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Vocabulary Vocabulary
	Progress   store.ProgressRepo

	// Events is optional; nil disables event logging.
	Events store.EventRepo

	// Source seeds every random choice of the session: selection,
	// context, exercise kind and option order. Nil seeds randomly.
	Source rand.Source

	Logger *slog.Logger
}

// Orchestrator drives sessions end to end. It holds no per-session data;
// every call operates on an explicit *State. Calls on one State must not
// run concurrently, calls on different States may.
type Orchestrator struct {
	vocabulary Vocabulary
	progress   store.ProgressRepo
	events     store.EventRepo
	selector   *Selector
	generator  *exercise.Generator
	mastery    *mastery.Service
	rng        *rand.Rand
	logger     *slog.Logger
	now        func() time.Time
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(d Deps) *Orchestrator {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	src := d.Source
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	rng := rand.New(&lockedSource{src: src})

	return &Orchestrator{
		vocabulary: d.Vocabulary,
		progress:   d.Progress,
		events:     d.Events,
		selector:   NewSelector(d.Progress, rng, logger),
		generator:  exercise.NewGenerator(d.Vocabulary, rng, logger),
		mastery:    mastery.NewService(d.Progress, logger),
		rng:        rng,
		logger:     logger,
		now:        time.Now,
	}
}

// Start begins a session of count items for the user in the course. It
// creates the user's progress records for the course on first use.
func (o *Orchestrator) Start(ctx context.Context, userID, courseCode string, count int) (*State, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}

	created, err := o.progress.InitializeProgress(ctx, userID, courseCode)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	if created > 0 {
		o.logger.Info("initialized progress", "user", userID, "course", courseCode, "items", created)
	}

	items, err := o.selector.Select(ctx, userID, courseCode, count)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	st := &State{
		ID:         uuid.NewString(),
		UserID:     userID,
		CourseCode: courseCode,
		Items:      items,
		Requested:  count,
		Phase:      PhaseActive,
		Results:    newResults(items),
		StartTime:  o.now(),
	}

	o.logger.Info("session started",
		"session_id", st.ID,
		"user", userID,
		"course", courseCode,
		"count", count,
	)
	o.appendSessionEvent(ctx, st, "start")
	return st, nil
}

// CurrentPrompt returns the exercise for the current item, building it
// from a random context entry on first call. The exercise is reused
// until the session moves to the next item.
func (o *Orchestrator) CurrentPrompt(ctx context.Context, st *State) (*exercise.Exercise, error) {
	if st.Phase != PhaseActive && st.Phase != PhaseFeedback {
		return nil, fmt.Errorf("current prompt in %s phase: %w", st.Phase, ErrWrongPhase)
	}
	if st.Exercise != nil {
		return st.Exercise, nil
	}

	cur := st.Current()
	if cur == nil {
		return nil, fmt.Errorf("current prompt past end of session: %w", ErrWrongPhase)
	}

	entries, err := o.vocabulary.ContextsByItem(ctx, cur.Item.ID)
	if err != nil {
		return nil, fmt.Errorf("load contexts for item %s: %w", cur.Item.ID, err)
	}
	entry, err := o.generator.PickContext(cur.Item, entries)
	if err != nil {
		return nil, err
	}

	kind := o.generator.PickKind(cur.Item)
	ex, err := o.generator.Generate(ctx, kind, cur.Item, entry)
	if err != nil {
		return nil, fmt.Errorf("build %s exercise for item %s: %w", kind, cur.Item.ID, err)
	}

	st.Exercise = ex
	st.PromptTime = o.now()
	return ex, nil
}

// SubmitAnswer grades the learner's answer to the current exercise and
// moves the session to the feedback phase. Mastery state is not touched
// until SubmitDifficulty or Advance.
func (o *Orchestrator) SubmitAnswer(ctx context.Context, st *State, answer string) (*Feedback, error) {
	if st.Phase != PhaseActive {
		return nil, fmt.Errorf("submit answer in %s phase: %w", st.Phase, ErrWrongPhase)
	}
	if st.Exercise == nil {
		return nil, fmt.Errorf("submit answer without a prompt: %w", ErrWrongPhase)
	}

	correct := exercise.CheckAnswer(answer, st.Exercise)
	st.Answered++
	if correct {
		st.CorrectCount++
	}

	st.Pending = &Feedback{
		ItemID:        st.Exercise.ItemID,
		Correct:       correct,
		LearnerAnswer: answer,
		CorrectAnswer: st.Exercise.Answer,
		NeedsRating:   correct,
	}
	st.Phase = PhaseFeedback
	return st.Pending, nil
}

// SubmitDifficulty applies a correct answer with the learner's rating
// and moves to the next item.
func (o *Orchestrator) SubmitDifficulty(ctx context.Context, st *State, label string) (*Feedback, error) {
	if st.Phase != PhaseFeedback || st.Pending == nil || !st.Pending.Correct {
		return nil, fmt.Errorf("rate difficulty in %s phase: %w", st.Phase, ErrWrongPhase)
	}
	fb := st.Pending
	if err := o.apply(ctx, st, mastery.ParseDifficulty(label)); err != nil {
		return nil, err
	}
	return fb, o.next(ctx, st)
}

// Advance applies an incorrect answer and moves to the next item.
func (o *Orchestrator) Advance(ctx context.Context, st *State) (*Feedback, error) {
	if st.Phase != PhaseFeedback || st.Pending == nil || st.Pending.Correct {
		return nil, fmt.Errorf("advance in %s phase: %w", st.Phase, ErrWrongPhase)
	}
	fb := st.Pending
	if err := o.apply(ctx, st, ""); err != nil {
		return nil, err
	}
	return fb, o.next(ctx, st)
}

// Skip moves past the current item without grading it. It is used when
// no exercise can be built for the item.
func (o *Orchestrator) Skip(ctx context.Context, st *State) error {
	if st.Phase != PhaseActive {
		return fmt.Errorf("skip in %s phase: %w", st.Phase, ErrWrongPhase)
	}
	if cur := st.Current(); cur != nil {
		if r := st.Results[cur.Item.ID]; r != nil {
			r.Skipped++
		}
		o.logger.Warn("item skipped", "session_id", st.ID, "item_id", cur.Item.ID)
	}
	st.Skipped++
	return o.next(ctx, st)
}

// Finalize retries the session counter increment of a session left in
// the finalizing phase by a store failure.
func (o *Orchestrator) Finalize(ctx context.Context, st *State) error {
	if st.Phase != PhaseFinalizing {
		return fmt.Errorf("finalize in %s phase: %w", st.Phase, ErrWrongPhase)
	}
	return o.finalize(ctx, st)
}

// IsComplete reports whether the session has completed, and its summary
// when it has.
func (o *Orchestrator) IsComplete(st *State) (bool, *Summary) {
	if st.Phase != PhaseCompleted {
		return false, nil
	}
	return true, BuildSummary(st)
}

// Abandon drops a session without incrementing the session counter.
// Answers already applied are kept.
func (o *Orchestrator) Abandon(ctx context.Context, st *State) (*Summary, error) {
	if st.Phase == PhaseCompleted || st.Phase == PhaseAbandoned {
		return nil, fmt.Errorf("abandon in %s phase: %w", st.Phase, ErrWrongPhase)
	}
	st.Phase = PhaseAbandoned
	st.EndTime = o.now()
	st.Exercise = nil
	st.Pending = nil

	o.logger.Info("session abandoned",
		"session_id", st.ID,
		"user", st.UserID,
		"answered", st.Answered,
		"requested", st.Requested,
	)
	o.appendSessionEvent(ctx, st, "abandon")
	return BuildSummary(st), nil
}

// apply runs the pending answer through the mastery state machine and
// records the answer event.
func (o *Orchestrator) apply(ctx context.Context, st *State, diff mastery.Difficulty) error {
	fb := st.Pending
	tr, err := o.mastery.Process(ctx, mastery.Answer{
		UserID:     st.UserID,
		ItemID:     fb.ItemID,
		CourseCode: st.CourseCode,
		Correct:    fb.Correct,
		Difficulty: diff,
	})
	if err != nil {
		return fmt.Errorf("apply answer: %w", err)
	}
	fb.Transition = tr

	if r := st.Results[fb.ItemID]; r != nil {
		r.Record(fb.Correct, tr)
	}

	if o.events == nil {
		return nil
	}
	data := store.AnswerEventData{
		SessionID:     st.ID,
		UserID:        st.UserID,
		CourseCode:    st.CourseCode,
		ItemID:        fb.ItemID,
		LearnerAnswer: fb.LearnerAnswer,
		CorrectAnswer: fb.CorrectAnswer,
		Correct:       fb.Correct,
		Difficulty:    string(diff),
		TimeMs:        int(o.now().Sub(st.PromptTime).Milliseconds()),
	}
	if st.Exercise != nil {
		data.Kind = string(st.Exercise.Kind)
		data.Prompt = st.Exercise.Prompt
	}
	if tr != nil {
		data.FromStatus = string(tr.From)
		data.ToStatus = string(tr.To)
		data.IntervalBefore = tr.IntervalBefore
		data.IntervalAfter = tr.IntervalAfter
	}
	if err := o.events.AppendAnswerEvent(ctx, data); err != nil {
		o.logger.Warn("failed to record answer event", "session_id", st.ID, "item_id", fb.ItemID, "error", err)
	}
	return nil
}

func (o *Orchestrator) next(ctx context.Context, st *State) error {
	st.Index++
	st.Exercise = nil
	st.Pending = nil
	if st.Index < len(st.Items) {
		st.Phase = PhaseActive
		return nil
	}
	st.Phase = PhaseFinalizing
	return o.finalize(ctx, st)
}

func (o *Orchestrator) finalize(ctx context.Context, st *State) error {
	completed, err := o.progress.IncrementSessionCounter(ctx, st.UserID, st.CourseCode)
	if err != nil {
		return fmt.Errorf("finalize session: %w", err)
	}
	st.Phase = PhaseCompleted
	st.EndTime = o.now()

	o.logger.Info("session completed",
		"session_id", st.ID,
		"user", st.UserID,
		"course", st.CourseCode,
		"correct", st.CorrectCount,
		"answered", st.Answered,
		"sessions_completed", completed,
	)
	o.appendSessionEvent(ctx, st, "end")
	return nil
}

func (o *Orchestrator) appendSessionEvent(ctx context.Context, st *State, action string) {
	if o.events == nil {
		return
	}
	var duration int
	if !st.EndTime.IsZero() {
		duration = int(st.EndTime.Sub(st.StartTime).Seconds())
	}
	err := o.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       st.ID,
		UserID:          st.UserID,
		CourseCode:      st.CourseCode,
		Action:          action,
		Requested:       st.Requested,
		QuestionsServed: st.Answered,
		CorrectAnswers:  st.CorrectCount,
		DurationSecs:    duration,
	})
	if err != nil {
		o.logger.Warn("failed to record session event", "session_id", st.ID, "action", action, "error", err)
	}
}

// lockedSource makes a rand.Source safe for concurrent use, so one
// *rand.Rand can serve every session.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}
