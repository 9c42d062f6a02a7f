package exercise

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabdrill/internal/vocab"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func walkItem() vocab.Item {
	return vocab.Item{
		ID:           "w1",
		SurfaceForm:  "walk",
		PartOfSpeech: vocab.PosVerb,
		Translation:  "caminar",
		CourseCode:   "EN-A1",
	}
}

func TestBuildGapFill(t *testing.T) {
	entry := vocab.ContextEntry{ID: 7, ItemID: "w1", Sentence: "I walk to school.", TargetWord: "walk"}

	ex, err := BuildGapFill(walkItem(), entry)
	require.NoError(t, err)

	assert.Equal(t, KindGapFill, ex.Kind)
	assert.Equal(t, "I w _ _ _ (caminar) to school.", ex.Prompt)
	assert.Equal(t, "walk", ex.Answer)
	assert.Equal(t, int64(7), ex.EntryID)
	assert.Empty(t, ex.Options)
}

func TestBuildGapFill_Deterministic(t *testing.T) {
	entry := vocab.ContextEntry{Sentence: "They walked home.", TargetWord: "walked"}

	a, err := BuildGapFill(walkItem(), entry)
	require.NoError(t, err)
	b, err := BuildGapFill(walkItem(), entry)
	require.NoError(t, err)
	assert.Equal(t, a.Prompt, b.Prompt)
	assert.Equal(t, "They w _ _ _ _ _ (caminar) home.", a.Prompt)
}

func TestBuildGapFill_SentenceStart(t *testing.T) {
	entry := vocab.ContextEntry{Sentence: "walk with me.", TargetWord: "walk"}

	ex, err := BuildGapFill(walkItem(), entry)
	require.NoError(t, err)
	assert.Equal(t, "W _ _ _ (caminar) with me.", ex.Prompt)
}

func TestBuildGapFill_SkipsPartialWords(t *testing.T) {
	entry := vocab.ContextEntry{Sentence: "Walkers walk slowly.", TargetWord: "walk"}

	ex, err := BuildGapFill(walkItem(), entry)
	require.NoError(t, err)
	assert.Equal(t, "Walkers w _ _ _ (caminar) slowly.", ex.Prompt)
}

func TestBuildGapFill_Accented(t *testing.T) {
	item := vocab.Item{ID: "c1", SurfaceForm: "café", PartOfSpeech: vocab.PosNoun, Translation: "coffee", CourseCode: "FR"}
	entry := vocab.ContextEntry{Sentence: "Un café noir.", TargetWord: "café"}

	ex, err := BuildGapFill(item, entry)
	require.NoError(t, err)
	assert.Equal(t, "Un c _ _ _ (coffee) noir.", ex.Prompt)
}

func TestBuildGapFill_Errors(t *testing.T) {
	_, err := BuildGapFill(walkItem(), vocab.ContextEntry{Sentence: "", TargetWord: "walk"})
	assert.True(t, errors.Is(err, vocab.ErrMissingContext))

	noTranslation := walkItem()
	noTranslation.Translation = ""
	_, err = BuildGapFill(noTranslation, vocab.ContextEntry{Sentence: "I walk.", TargetWord: "walk"})
	assert.True(t, errors.Is(err, vocab.ErrMissingContext))

	_, err = BuildGapFill(walkItem(), vocab.ContextEntry{Sentence: "I run.", TargetWord: "walk"})
	assert.True(t, errors.Is(err, vocab.ErrMalformedExerciseData))
}

func TestBuildMultipleChoice(t *testing.T) {
	entry := vocab.ContextEntry{Sentence: "She is walking to the park.", TargetWord: "walking"}
	candidates := []string{"run", "make", "walker", "sleep", "eat", "jump"}

	ex, err := BuildMultipleChoice(walkItem(), entry, candidates, testRand())
	require.NoError(t, err)

	assert.Equal(t, KindMultipleChoice, ex.Kind)
	assert.Equal(t, "She is "+Blank+" to the park.", ex.Prompt)
	assert.Equal(t, "walking", ex.Answer)
	assert.Len(t, ex.Options, 5)
	assert.ElementsMatch(t, []string{"walking", "running", "making", "sleeping", "eating"}, ex.Options)
	assert.Zero(t, ex.Placeholders)
	assert.Equal(t, "walking", ex.Options[ex.CorrectIndex()])
}

func TestBuildMultipleChoice_PadsPlaceholders(t *testing.T) {
	item := vocab.Item{ID: "b1", SurfaceForm: "book", PartOfSpeech: vocab.PosNoun, CourseCode: "EN-A1"}
	entry := vocab.ContextEntry{Sentence: "I read two books.", TargetWord: "books"}

	ex, err := BuildMultipleChoice(item, entry, []string{"city", "box"}, testRand())
	require.NoError(t, err)

	assert.Len(t, ex.Options, 5)
	assert.Equal(t, 2, ex.Placeholders)
	assert.ElementsMatch(t, []string{"books", "cities", "boxes", Placeholder, Placeholder}, ex.Options)
}

func TestBuildMultipleChoice_ArticleRewrite(t *testing.T) {
	item := vocab.Item{ID: "a1", SurfaceForm: "apple", PartOfSpeech: vocab.PosNoun, CourseCode: "EN-A1"}

	ex, err := BuildMultipleChoice(item, vocab.ContextEntry{Sentence: "I ate an apple today.", TargetWord: "apple"}, nil, testRand())
	require.NoError(t, err)
	assert.Equal(t, "I ate a/an "+Blank+" today.", ex.Prompt)

	ex, err = BuildMultipleChoice(item, vocab.ContextEntry{Sentence: "An apple a day.", TargetWord: "apple"}, nil, testRand())
	require.NoError(t, err)
	assert.Equal(t, "A/An "+Blank+" a day.", ex.Prompt)
}

func TestBuildMultipleChoice_OtherPosKeepsDistractors(t *testing.T) {
	item := vocab.Item{ID: "q1", SurfaceForm: "quickly", PartOfSpeech: vocab.PosOther, CourseCode: "EN-A1"}
	entry := vocab.ContextEntry{Sentence: "He ran quickly.", TargetWord: "quickly"}

	ex, err := BuildMultipleChoice(item, entry, []string{"slowly", "often", "never", "soon"}, testRand())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"quickly", "slowly", "often", "never", "soon"}, ex.Options)
}

func TestBuildMultipleChoice_Errors(t *testing.T) {
	noCourse := walkItem()
	noCourse.CourseCode = ""
	_, err := BuildMultipleChoice(noCourse, vocab.ContextEntry{Sentence: "I walk.", TargetWord: "walk"}, nil, testRand())
	assert.True(t, errors.Is(err, vocab.ErrMissingContext))

	_, err = BuildMultipleChoice(walkItem(), vocab.ContextEntry{Sentence: "I run.", TargetWord: "walk"}, nil, testRand())
	assert.True(t, errors.Is(err, vocab.ErrMalformedExerciseData))
}

type stubDistractors struct {
	words []string
	limit int
	err   error
}

func (s *stubDistractors) CandidateDistractors(_ context.Context, _ string, _ vocab.PartOfSpeech, _ string, limit int) ([]string, error) {
	s.limit = limit
	words := s.words
	if limit > 0 && limit < len(words) {
		words = words[:limit]
	}
	return append([]string(nil), words...), s.err
}

func TestGenerator_MultipleChoice(t *testing.T) {
	src := &stubDistractors{words: []string{"run", "make", "sleep", "eat", "jump", "sing"}}
	g := NewGenerator(src, testRand(), nil)

	entry := vocab.ContextEntry{Sentence: "I walk daily.", TargetWord: "walk"}
	ex, err := g.Generate(context.Background(), KindMultipleChoice, walkItem(), entry)
	require.NoError(t, err)

	assert.Equal(t, 0, src.limit, "the whole candidate pool is requested")
	assert.Len(t, ex.Options, 5)
	assert.Contains(t, ex.Options, "walk")
	assert.NotContains(t, ex.Options, Placeholder)
}

func TestGenerator_DrawsFromWholePool(t *testing.T) {
	words := make([]string, 80)
	for i := range words {
		words[i] = fmt.Sprintf("verb%02d", i)
	}
	g := NewGenerator(&stubDistractors{words: words}, testRand(), nil)
	entry := vocab.ContextEntry{Sentence: "I walk daily.", TargetWord: "walk"}

	late := false
	for i := 0; i < 50 && !late; i++ {
		ex, err := g.Generate(context.Background(), KindMultipleChoice, walkItem(), entry)
		require.NoError(t, err)
		for _, o := range ex.Options {
			if o >= "verb50" && o <= "verb79" {
				late = true
			}
		}
	}
	assert.True(t, late, "distractors beyond the first 50 candidates are drawn")
}

func TestGenerator_DistractorError(t *testing.T) {
	g := NewGenerator(&stubDistractors{err: errors.New("db down")}, testRand(), nil)

	_, err := g.Generate(context.Background(), KindMultipleChoice, walkItem(),
		vocab.ContextEntry{Sentence: "I walk.", TargetWord: "walk"})
	assert.Error(t, err)
}

func TestGenerator_PickKind(t *testing.T) {
	g := NewGenerator(&stubDistractors{}, testRand(), nil)

	noTranslation := walkItem()
	noTranslation.Translation = ""
	for i := 0; i < 20; i++ {
		assert.Equal(t, KindMultipleChoice, g.PickKind(noTranslation))
	}

	seen := map[Kind]bool{}
	for i := 0; i < 100; i++ {
		seen[g.PickKind(walkItem())] = true
	}
	assert.True(t, seen[KindGapFill])
	assert.True(t, seen[KindMultipleChoice])
}

func TestGenerator_PickContext(t *testing.T) {
	g := NewGenerator(&stubDistractors{}, testRand(), nil)

	_, err := g.PickContext(walkItem(), nil)
	assert.True(t, errors.Is(err, vocab.ErrNoContextAvailable))

	entries := []vocab.ContextEntry{{ID: 1}, {ID: 2}}
	e, err := g.PickContext(walkItem(), entries)
	require.NoError(t, err)
	assert.Contains(t, []int64{1, 2}, e.ID)
}
