package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabdrill/internal/exercise"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

func newTestOrchestrator(p *mockProgress, v *mockVocabulary, e *mockEvents) *Orchestrator {
	d := Deps{
		Vocabulary: v,
		Progress:   p,
		Source:     rand.NewPCG(1, 2),
	}
	if e != nil {
		d.Events = e
	}
	return NewOrchestrator(d)
}

func TestOrchestrator_FullSession(t *testing.T) {
	progress, vocabulary, events := walkRunFixture()
	orch := newTestOrchestrator(progress, vocabulary, events)
	ctx := context.Background()

	st, err := orch.Start(ctx, "u", "L1", 2)
	require.NoError(t, err)
	assert.Equal(t, PhaseActive, st.Phase)
	assert.Equal(t, []string{"1", "2"}, ids(st.Items))
	assert.NotEmpty(t, st.ID)

	// First item: correct, rated easy.
	ex, err := orch.CurrentPrompt(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "1", ex.ItemID)
	assert.Equal(t, "walk", ex.Answer)

	again, err := orch.CurrentPrompt(ctx, st)
	require.NoError(t, err)
	assert.Same(t, ex, again, "prompt is cached until the index advances")

	fb, err := orch.SubmitAnswer(ctx, st, " WALK ")
	require.NoError(t, err)
	assert.True(t, fb.Correct)
	assert.True(t, fb.NeedsRating)
	assert.Equal(t, PhaseFeedback, st.Phase)

	_, err = orch.Advance(ctx, st)
	assert.True(t, errors.Is(err, ErrWrongPhase), "advance needs an incorrect answer")

	fb, err = orch.SubmitDifficulty(ctx, st, "easy")
	require.NoError(t, err)
	require.NotNil(t, fb.Transition)
	assert.Equal(t, vocab.StatusAcquired, fb.Transition.To)
	assert.Equal(t, PhaseActive, st.Phase)
	assert.Equal(t, 1, st.Index)

	p := progress.records["u/1"]
	assert.Equal(t, vocab.StatusAcquired, p.Status)
	assert.Equal(t, 1, p.Interval)
	assert.Equal(t, 1, p.LastSeenSession)

	// Second item: incorrect.
	ex, err = orch.CurrentPrompt(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "2", ex.ItemID)

	fb, err = orch.SubmitAnswer(ctx, st, "fly")
	require.NoError(t, err)
	assert.False(t, fb.Correct)
	assert.False(t, fb.NeedsRating)

	_, err = orch.SubmitDifficulty(ctx, st, "easy")
	assert.True(t, errors.Is(err, ErrWrongPhase), "rating needs a correct answer")

	_, err = orch.Advance(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, vocab.StatusUnderAcquisition, progress.records["u/2"].Status)

	done, summary := orch.IsComplete(st)
	require.True(t, done)
	assert.Equal(t, PhaseCompleted, st.Phase)
	assert.Equal(t, 1, progress.counters["u/L1"])
	assert.Equal(t, 2, summary.Answered)
	assert.Equal(t, 1, summary.Correct)
	assert.InDelta(t, 0.5, summary.Accuracy, 0.001)
	assert.Equal(t, 1, summary.NewlyAcquired)
	require.Len(t, summary.ItemResults, 2)

	assert.Equal(t, []string{"start", "end"}, events.actions())
	require.Len(t, events.answers, 2)
	assert.Equal(t, "easy", events.answers[0].Difficulty)
	assert.Equal(t, string(vocab.StatusNotStarted), events.answers[0].FromStatus)
	assert.Equal(t, st.ID, events.answers[1].SessionID)
	assert.False(t, events.answers[1].Correct)

	_, err = orch.CurrentPrompt(ctx, st)
	assert.True(t, errors.Is(err, ErrWrongPhase))
}

func TestOrchestrator_SecondSessionUsesCounter(t *testing.T) {
	progress, vocabulary, events := walkRunFixture()
	orch := newTestOrchestrator(progress, vocabulary, events)
	ctx := context.Background()
	progress.counters["u/L1"] = 4

	st, err := orch.Start(ctx, "u", "L1", 1)
	require.NoError(t, err)
	ex, err := orch.CurrentPrompt(ctx, st)
	require.NoError(t, err)
	_, err = orch.SubmitAnswer(ctx, st, ex.Answer)
	require.NoError(t, err)
	_, err = orch.SubmitDifficulty(ctx, st, "")
	require.NoError(t, err)

	assert.Equal(t, 5, progress.records["u/1"].LastSeenSession)
	assert.Equal(t, 5, progress.counters["u/L1"])
}

func TestOrchestrator_WrongPhase(t *testing.T) {
	progress, vocabulary, events := walkRunFixture()
	orch := newTestOrchestrator(progress, vocabulary, events)
	ctx := context.Background()

	st, err := orch.Start(ctx, "u", "L1", 1)
	require.NoError(t, err)

	_, err = orch.SubmitAnswer(ctx, st, "walk")
	assert.True(t, errors.Is(err, ErrWrongPhase), "answer before prompt")

	_, err = orch.SubmitDifficulty(ctx, st, "easy")
	assert.True(t, errors.Is(err, ErrWrongPhase))

	_, err = orch.Advance(ctx, st)
	assert.True(t, errors.Is(err, ErrWrongPhase))

	assert.True(t, errors.Is(orch.Finalize(ctx, st), ErrWrongPhase))

	_, err = orch.Start(ctx, "u", "L1", 0)
	assert.True(t, errors.Is(err, ErrInvalidCount))
}

func TestOrchestrator_SkipItemWithoutContext(t *testing.T) {
	progress, vocabulary, events := walkRunFixture()
	delete(vocabulary.contexts, "1")
	orch := newTestOrchestrator(progress, vocabulary, events)
	ctx := context.Background()

	st, err := orch.Start(ctx, "u", "L1", 2)
	require.NoError(t, err)

	_, err = orch.CurrentPrompt(ctx, st)
	require.True(t, errors.Is(err, vocab.ErrNoContextAvailable))

	require.NoError(t, orch.Skip(ctx, st))
	assert.Equal(t, 1, st.Index)
	assert.Equal(t, vocab.StatusNotStarted, progress.records["u/1"].Status)

	ex, err := orch.CurrentPrompt(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "2", ex.ItemID)

	_, err = orch.SubmitAnswer(ctx, st, ex.Answer)
	require.NoError(t, err)
	_, err = orch.SubmitDifficulty(ctx, st, "average")
	require.NoError(t, err)

	done, summary := orch.IsComplete(st)
	require.True(t, done)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Answered)
}

func TestOrchestrator_FinalizeRetry(t *testing.T) {
	progress, vocabulary, events := walkRunFixture()
	orch := newTestOrchestrator(progress, vocabulary, events)
	ctx := context.Background()

	st, err := orch.Start(ctx, "u", "L1", 1)
	require.NoError(t, err)
	_, err = orch.CurrentPrompt(ctx, st)
	require.NoError(t, err)
	_, err = orch.SubmitAnswer(ctx, st, "nope")
	require.NoError(t, err)

	boom := errors.New("database is locked")
	progress.incErr = boom
	_, err = orch.Advance(ctx, st)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, PhaseFinalizing, st.Phase)
	assert.Equal(t, 0, progress.counters["u/L1"])

	progress.incErr = nil
	require.NoError(t, orch.Finalize(ctx, st))
	assert.Equal(t, PhaseCompleted, st.Phase)
	assert.Equal(t, 1, progress.counters["u/L1"])
}

func TestOrchestrator_Abandon(t *testing.T) {
	progress, vocabulary, events := walkRunFixture()
	orch := newTestOrchestrator(progress, vocabulary, events)
	ctx := context.Background()

	st, err := orch.Start(ctx, "u", "L1", 2)
	require.NoError(t, err)

	summary, err := orch.Abandon(ctx, st)
	require.NoError(t, err)
	assert.True(t, summary.Abandoned)
	assert.Equal(t, 0, progress.counters["u/L1"])
	assert.Equal(t, []string{"start", "abandon"}, events.actions())

	_, err = orch.Abandon(ctx, st)
	assert.True(t, errors.Is(err, ErrWrongPhase))

	done, _ := orch.IsComplete(st)
	assert.False(t, done)
}

func TestOrchestrator_MultipleChoicePadding(t *testing.T) {
	progress := newMockProgress(item("1", "book", vocab.PosNoun, ""))
	vocabulary := &mockVocabulary{
		contexts: map[string][]vocab.ContextEntry{
			"1": {{ID: 1, ItemID: "1", Sentence: "She reads books at night.", TargetWord: "books"}},
		},
		distractors: []string{"pen", "cup"},
	}
	orch := newTestOrchestrator(progress, vocabulary, nil)
	ctx := context.Background()

	st, err := orch.Start(ctx, "u", "L1", 1)
	require.NoError(t, err)

	ex, err := orch.CurrentPrompt(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, exercise.KindMultipleChoice, ex.Kind, "items without translation get multiple choice")
	assert.Len(t, ex.Options, 5)
	assert.Equal(t, 2, ex.Placeholders)
	assert.Contains(t, ex.Options, "pens")
	assert.Contains(t, ex.Options, "cups")

	fb, err := orch.SubmitAnswer(ctx, st, exercise.OptionLabel(ex.CorrectIndex()))
	require.NoError(t, err)
	assert.True(t, fb.Correct)
}

func TestBuildSummary_Duration(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	st := &State{
		StartTime:    start,
		EndTime:      start.Add(90 * time.Second),
		Phase:        PhaseCompleted,
		Answered:     4,
		CorrectCount: 3,
	}
	s := BuildSummary(st)
	assert.Equal(t, 90*time.Second, s.Duration)
	assert.InDelta(t, 0.75, s.Accuracy, 0.001)
	assert.False(t, s.Abandoned)
}
