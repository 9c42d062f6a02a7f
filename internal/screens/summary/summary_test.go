package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

func testSummary() *session.Summary {
	return &session.Summary{
		SessionID:     "s-1",
		CourseCode:    "L1",
		Duration:      4*time.Minute + 5*time.Second,
		Requested:     3,
		Answered:      3,
		Correct:       2,
		Accuracy:      2.0 / 3.0,
		NewlyAcquired: 1,
		Regressed:     1,
		ItemResults: []session.ItemResult{
			{
				ItemID:       "1",
				SurfaceForm:  "walk",
				Category:     session.CategoryNew,
				Attempted:    1,
				Correct:      1,
				StatusBefore: vocab.StatusNotStarted,
				StatusAfter:  vocab.StatusAcquired,
				Interval:     2,
			},
			{
				ItemID:       "2",
				SurfaceForm:  "run",
				Category:     session.CategoryDue,
				Attempted:    2,
				Correct:      1,
				StatusBefore: vocab.StatusAcquired,
				StatusAfter:  vocab.StatusUnderAcquisition,
				Interval:     1,
			},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}

	sum := testSummary()
	sum.Abandoned = true
	if got := New(sum).Title(); got != "Session Ended" {
		t.Errorf("Title = %q, want %q", got, "Session Ended")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(100, 30)

	for _, want := range []string{"Session complete!", "4:05", "Accuracy: 67%", "walk", "run", "1 newly acquired", "Not started > Acquired"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_DisplayAbandoned(t *testing.T) {
	sum := testSummary()
	sum.Abandoned = true
	sum.Answered = 1
	view := New(sum).View(100, 30)
	if !strings.Contains(view, "Session ended early") {
		t.Error("expected the early end title")
	}
	if !strings.Contains(view, "Answered: 1/3") {
		t.Error("expected answered out of requested")
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	if view := New(nil).View(80, 24); view != "" {
		t.Errorf("expected empty view, got %q", view)
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeyEscape},
	} {
		s := New(testSummary())
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("expected a command on %s", key.String())
		}
		msg, ok := cmd().(router.PopToRootMsg)
		if !ok {
			t.Fatalf("expected PopToRootMsg, got %T", cmd())
		}
		if _, ok := msg.Refresh.(SessionsChangedMsg); !ok {
			t.Errorf("expected SessionsChangedMsg refresh, got %T", msg.Refresh)
		}
	}
}

func TestSummaryScreen_Scroll(t *testing.T) {
	s := New(testSummary())
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.offset != 1 {
		t.Errorf("offset = %d, want 1", s.offset)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset != 0 {
		t.Errorf("offset = %d, want 0", s.offset)
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	if hints := s.KeyHints(); len(hints) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(hints))
	}
}
