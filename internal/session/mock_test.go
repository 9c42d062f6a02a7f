package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// mockProgress implements store.ProgressRepo over in-memory maps.
type mockProgress struct {
	mu       sync.Mutex
	items    []vocab.Item
	records  map[string]vocab.Progress
	counters map[string]int
	incErr   error
}

func newMockProgress(items ...vocab.Item) *mockProgress {
	return &mockProgress{
		items:    items,
		records:  make(map[string]vocab.Progress),
		counters: make(map[string]int),
	}
}

func (m *mockProgress) set(p vocab.Progress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[p.UserID+"/"+p.ItemID] = p
}

func (m *mockProgress) ItemsWithProgress(_ context.Context, userID, courseCode string) ([]vocab.ItemProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []vocab.ItemProgress
	for _, it := range m.items {
		if it.CourseCode != courseCode {
			continue
		}
		p, ok := m.records[userID+"/"+it.ID]
		if !ok {
			p = vocab.NewProgress(userID, it.ID, courseCode)
		}
		out = append(out, vocab.ItemProgress{Item: it, Progress: p})
	}
	return out, nil
}

func (m *mockProgress) GetProgress(_ context.Context, userID, itemID string) (vocab.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.records[userID+"/"+itemID]
	if !ok {
		return vocab.Progress{}, vocab.ErrNotFound
	}
	return p, nil
}

func (m *mockProgress) UpsertProgress(_ context.Context, p vocab.Progress) error {
	m.set(p)
	return nil
}

func (m *mockProgress) UpdateProgress(_ context.Context, userID, itemID, courseCode string, fn store.ProgressFunc) (vocab.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.records[userID+"/"+itemID]
	if !ok {
		return vocab.Progress{}, fmt.Errorf("update progress: %w", vocab.ErrNotFound)
	}
	next, err := fn(p, m.counters[userID+"/"+courseCode])
	if err != nil {
		return vocab.Progress{}, err
	}
	m.records[userID+"/"+itemID] = next
	return next, nil
}

func (m *mockProgress) InitializeProgress(_ context.Context, userID, courseCode string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := 0
	for _, it := range m.items {
		if it.CourseCode != courseCode {
			continue
		}
		key := userID + "/" + it.ID
		if _, ok := m.records[key]; !ok {
			m.records[key] = vocab.NewProgress(userID, it.ID, courseCode)
			created++
		}
	}
	if _, ok := m.counters[userID+"/"+courseCode]; !ok {
		m.counters[userID+"/"+courseCode] = 0
	}
	return created, nil
}

func (m *mockProgress) SessionCounter(_ context.Context, userID, courseCode string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[userID+"/"+courseCode], nil
}

func (m *mockProgress) IncrementSessionCounter(_ context.Context, userID, courseCode string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.incErr != nil {
		return 0, m.incErr
	}
	m.counters[userID+"/"+courseCode]++
	return m.counters[userID+"/"+courseCode], nil
}

// mockVocabulary serves contexts and distractors from maps.
type mockVocabulary struct {
	contexts    map[string][]vocab.ContextEntry
	distractors []string
}

func (m *mockVocabulary) ContextsByItem(_ context.Context, itemID string) ([]vocab.ContextEntry, error) {
	return m.contexts[itemID], nil
}

func (m *mockVocabulary) CandidateDistractors(_ context.Context, _ string, _ vocab.PartOfSpeech, _ string, limit int) ([]string, error) {
	out := append([]string(nil), m.distractors...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// mockEvents records appended events.
type mockEvents struct {
	mu       sync.Mutex
	answers  []store.AnswerEventData
	sessions []store.SessionEventData
}

func (m *mockEvents) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, data)
	return nil
}

func (m *mockEvents) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, data)
	return nil
}

func (m *mockEvents) AnswerAccuracy(_ context.Context, _, _ string) (store.Accuracy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var acc store.Accuracy
	for _, a := range m.answers {
		acc.Total++
		if a.Correct {
			acc.Correct++
		}
	}
	return acc, nil
}

func (m *mockEvents) RecentSessions(_ context.Context, _, _ string, _ int) ([]store.SessionRecord, error) {
	return nil, nil
}

func (m *mockEvents) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, s := range m.sessions {
		out = append(out, s.Action)
	}
	return out
}

func item(id, surface string, pos vocab.PartOfSpeech, translation string) vocab.Item {
	return vocab.Item{
		ID:           id,
		SurfaceForm:  surface,
		PartOfSpeech: pos,
		Translation:  translation,
		Mode:         vocab.ModeReading,
		CourseCode:   "L1",
	}
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

// walkRunFixture is a two-verb course with one context per item.
func walkRunFixture() (*mockProgress, *mockVocabulary, *mockEvents) {
	progress := newMockProgress(
		item("1", "walk", vocab.PosVerb, "caminar"),
		item("2", "run", vocab.PosVerb, "correr"),
	)
	vocabulary := &mockVocabulary{
		contexts: map[string][]vocab.ContextEntry{
			"1": {{ID: 1, ItemID: "1", Sentence: "I walk to school.", TargetWord: "walk"}},
			"2": {{ID: 2, ItemID: "2", Sentence: "They run every day.", TargetWord: "run"}},
		},
		distractors: []string{"make", "eat", "sleep"},
	}
	return progress, vocabulary, &mockEvents{}
}
