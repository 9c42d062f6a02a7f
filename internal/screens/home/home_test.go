package home

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screens/countpicker"
	"github.com/abhisek/vocabdrill/internal/screens/summary"
	"github.com/abhisek/vocabdrill/internal/screens/vocablist"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

func openStore(t *testing.T, courses ...string) *store.Store {
	t.Helper()
	st, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "home.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	var items []vocab.Item
	for _, c := range courses {
		items = append(items,
			vocab.Item{ID: c + "-a", SurfaceForm: "walk", PartOfSpeech: vocab.PosVerb, CourseCode: c, Mode: vocab.ModeReading},
			vocab.Item{ID: c + "-b", SurfaceForm: "book", PartOfSpeech: vocab.PosNoun, CourseCode: c, Mode: vocab.ModeReading},
		)
	}
	if len(items) > 0 {
		if _, err := st.VocabularyRepo().Import(context.Background(), items, nil); err != nil {
			t.Fatalf("import: %v", err)
		}
	}
	return st
}

func newHome(st *store.Store, course string) *HomeScreen {
	orch := session.NewOrchestrator(session.Deps{
		Vocabulary: st.VocabularyRepo(),
		Progress:   st.ProgressRepo(),
		Events:     st.EventRepo(),
		Source:     rand.NewPCG(1, 2),
	})
	return New(Options{
		Sessions:   session.NewRegistry(orch, 0, nil),
		Vocabulary: st.VocabularyRepo(),
		Progress:   st.ProgressRepo(),
		Events:     st.EventRepo(),
		Demoter:    mastery.NewService(st.ProgressRepo(), nil),
		User:       "ana",
		Course:     course,
		Count:      25,
	})
}

func TestLoadStats(t *testing.T) {
	st := openStore(t, "L1")
	ctx := context.Background()

	p := vocab.NewProgress("ana", "L1-a", "L1")
	p.Status = vocab.StatusAcquired
	p.Interval = 2
	if err := st.ProgressRepo().UpsertProgress(ctx, p); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	for range 2 {
		if _, err := st.ProgressRepo().IncrementSessionCounter(ctx, "ana", "L1"); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	stats, err := LoadStats(ctx, st.VocabularyRepo(), st.ProgressRepo(), "ana", "")
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.Course != "L1" {
		t.Errorf("Course = %q, want the only course", stats.Course)
	}
	if stats.Items != 2 {
		t.Errorf("Items = %d, want 2", stats.Items)
	}
	if stats.ByStatus[vocab.StatusAcquired] != 1 || stats.ByStatus[vocab.StatusNotStarted] != 1 {
		t.Errorf("ByStatus = %v", stats.ByStatus)
	}
	if stats.SessionsCompleted != 2 {
		t.Errorf("SessionsCompleted = %d, want 2", stats.SessionsCompleted)
	}
	if stats.Due != 1 {
		t.Errorf("Due = %d, want 1", stats.Due)
	}
}

func TestLoadStatsSeveralCourses(t *testing.T) {
	st := openStore(t, "L1", "L2")

	stats, err := LoadStats(context.Background(), st.VocabularyRepo(), st.ProgressRepo(), "ana", "")
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.Course != "" {
		t.Errorf("Course = %q, want none chosen", stats.Course)
	}
	if len(stats.Courses) != 2 {
		t.Errorf("Courses = %v", stats.Courses)
	}
	if stats.Items != 0 {
		t.Errorf("Items = %d, want 0 without a course", stats.Items)
	}
}

func TestMenuWithoutCourse(t *testing.T) {
	st := openStore(t, "L1", "L2")
	h := newHome(st, "")
	h.Update(h.Init()())

	if !h.loaded {
		t.Fatal("stats not loaded")
	}
	for _, it := range h.menu.Items {
		switch it.Label {
		case "VOCABULARY", "HISTORY":
			if !it.Disabled {
				t.Errorf("%s should be disabled without a course", it.Label)
			}
		case "START PRACTICE":
			if it.Disabled {
				t.Error("practice picks the course itself")
			}
		}
	}
	if !strings.Contains(h.View(100, 40), "2 courses available") {
		t.Error("view should list the course count")
	}
}

func TestStartPracticeOpensPicker(t *testing.T) {
	st := openStore(t, "L1")
	h := newHome(st, "")
	h.Update(h.Init()())

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	picker, ok := push.Screen.(*countpicker.PickerScreen)
	if !ok {
		t.Fatalf("pushed %T", push.Screen)
	}
	if picker.Course() != "L1" {
		t.Errorf("picker course = %q", picker.Course())
	}
}

func TestVocabularyOpensList(t *testing.T) {
	st := openStore(t, "L1")
	h := newHome(st, "L1")
	h.Update(h.Init()())

	_, cmd := h.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if cmd == nil {
		t.Fatal("expected command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*vocablist.ListScreen); !ok {
		t.Errorf("pushed %T, want vocabulary list", push.Screen)
	}
}

func TestSessionsChangedReloads(t *testing.T) {
	st := openStore(t, "L1")
	h := newHome(st, "L1")
	h.Update(h.Init()())
	if h.Stats().SessionsCompleted != 0 {
		t.Fatal("expected no sessions")
	}

	if _, err := st.ProgressRepo().IncrementSessionCounter(context.Background(), "ana", "L1"); err != nil {
		t.Fatalf("increment: %v", err)
	}
	_, cmd := h.Update(summary.SessionsChangedMsg{})
	if cmd == nil {
		t.Fatal("expected reload")
	}
	h.Update(cmd())
	if h.Stats().SessionsCompleted != 1 {
		t.Errorf("SessionsCompleted = %d, want 1", h.Stats().SessionsCompleted)
	}
}
