// Package practice implements the practice screen: it starts a session,
// shows one exercise at a time and collects the learner's answer and
// difficulty rating.
package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/exercise"
	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/summary"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// Driver runs sessions by handle. *session.Registry implements it.
type Driver interface {
	Start(ctx context.Context, userID, courseCode string, count int) (string, error)
	CurrentPrompt(ctx context.Context, handle string) (*exercise.Exercise, error)
	SubmitAnswer(ctx context.Context, handle, answer string) (*session.Feedback, error)
	SubmitDifficulty(ctx context.Context, handle, label string) (*session.Feedback, error)
	Advance(ctx context.Context, handle string) (*session.Feedback, error)
	Skip(ctx context.Context, handle string) error
	IsComplete(handle string) (bool, *session.Summary, error)
	Abandon(ctx context.Context, handle string) (*session.Summary, error)
}

var _ Driver = (*session.Registry)(nil)

// PracticeScreen implements screen.Screen for a running session.
type PracticeScreen struct {
	driver Driver
	user   string
	course string
	count  int
	logger *slog.Logger

	handle string
	ex     *exercise.Exercise
	fb     *session.Feedback

	// position is the 1-based number of the item on screen.
	position int
	correct  int

	input   components.TextInput
	choices components.MultiChoice
	rating  components.ButtonRow
	next    components.Button

	busy        bool
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.EscapeHandler = (*PracticeScreen)(nil)

// New creates a practice screen for count items of the course.
func New(driver Driver, user, course string, count int, logger *slog.Logger) *PracticeScreen {
	if logger == nil {
		logger = slog.Default()
	}
	return &PracticeScreen{
		driver: driver,
		user:   user,
		course: course,
		count:  count,
		logger: logger,
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	s.busy = true
	return s.startSession()
}

func (s *PracticeScreen) Title() string {
	return fmt.Sprintf("Practice · %s", s.course)
}

func (s *PracticeScreen) HandlesEscape() bool {
	return s.errMsg == ""
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.fb != nil && s.fb.NeedsRating:
		return []layout.KeyHint{
			{Key: "1-3", Description: "Rate"},
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
		}
	case s.fb != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.ex != nil && s.ex.Kind == exercise.KindMultipleChoice:
		return []layout.KeyHint{
			{Key: "A-E", Description: "Answer"},
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *PracticeScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.confirmQuit:
		return renderQuitConfirm(width)
	case s.ex == nil:
		return renderLoading(width)
	case s.fb != nil:
		return s.renderFeedback(width, height)
	default:
		return s.renderExercise(width, height)
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		return s.handleStarted(msg)
	case promptReadyMsg:
		return s.handlePrompt(msg)
	case answerGradedMsg:
		return s.handleGraded(msg)
	case answerAppliedMsg:
		return s.handleApplied(msg.Err)
	case itemSkippedMsg:
		return s.handleApplied(msg.Err)
	case sessionDoneMsg:
		return s.handleDone(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.acceptsTyping() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) handleStarted(msg sessionStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.busy = false
		if errors.Is(msg.Err, vocab.ErrEmptyCourse) {
			s.errMsg = fmt.Sprintf("Course %s has no vocabulary. Import some with `vocabdrill import`.", s.course)
		} else {
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}
	s.handle = msg.Handle
	return s, s.loadPrompt()
}

func (s *PracticeScreen) handlePrompt(msg promptReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if session.Skippable(msg.Err) {
			s.logger.Warn("skipping item without a usable exercise", "session_id", s.handle, "error", msg.Err)
			return s, s.skipItem()
		}
		s.busy = false
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.busy = false
	s.position++
	s.ex = msg.Exercise
	s.fb = nil

	if s.ex.Kind == exercise.KindMultipleChoice {
		s.choices = components.NewMultiChoice("", s.ex.Options, -1)
		return s, nil
	}
	s.input = components.NewTextInput("Type the missing word...", 64)
	return s, s.input.Init()
}

func (s *PracticeScreen) handleGraded(msg answerGradedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.fb = msg.Feedback
	if s.fb.Correct {
		s.correct++
	}

	if s.ex.Kind == exercise.KindMultipleChoice {
		s.choices.Reveal(s.ex.CorrectIndex())
	} else {
		s.input.Submit(s.fb.Correct)
	}

	if s.fb.NeedsRating {
		s.rating = newRatingRow(s.rate)
	} else {
		s.next = components.NewButton("NEXT", true, s.advance)
	}
	return s, nil
}

// handleApplied runs after an answer was applied or an item skipped.
func (s *PracticeScreen) handleApplied(err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		s.busy = false
		s.errMsg = err.Error()
		return s, nil
	}
	s.ex = nil
	s.fb = nil

	done, sum, err := s.driver.IsComplete(s.handle)
	if err != nil {
		s.busy = false
		s.errMsg = err.Error()
		return s, nil
	}
	if done {
		return s, func() tea.Msg { return sessionDoneMsg{Summary: sum} }
	}
	return s, s.loadPrompt()
}

func (s *PracticeScreen) handleDone(msg sessionDoneMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(msg.Summary)}
	}
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopToRootMsg{Refresh: summary.SessionsChangedMsg{}} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.abandon()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		if s.handle == "" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.confirmQuit = true
		return s, nil
	}

	if s.busy || s.ex == nil {
		return s, nil
	}

	var cmd tea.Cmd
	switch {
	case s.fb != nil && s.fb.NeedsRating:
		s.rating, cmd = s.rating.Update(msg)
	case s.fb != nil:
		s.next, cmd = s.next.Update(msg)
	case s.ex.Kind == exercise.KindMultipleChoice:
		s.choices, _ = s.choices.Update(msg)
		if s.choices.Submitted {
			cmd = s.submit(s.choices.Chosen())
		}
	default:
		if key == "enter" {
			if s.input.Value() == "" {
				return s, nil
			}
			return s, s.submit(s.input.Value())
		}
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

func (s *PracticeScreen) acceptsTyping() bool {
	return !s.busy && !s.confirmQuit && s.errMsg == "" &&
		s.ex != nil && s.fb == nil && s.ex.Kind == exercise.KindGapFill
}

func newRatingRow(rate func(mastery.Difficulty) tea.Cmd) components.ButtonRow {
	buttons := make([]components.Button, len(mastery.Difficulties))
	for i, d := range mastery.Difficulties {
		buttons[i] = components.NewButton(strings.ToUpper(string(d)), false, func() tea.Cmd { return rate(d) })
	}
	row := components.NewButtonRow(buttons...)
	for i, d := range mastery.Difficulties {
		row.Shortcuts[strconv.Itoa(i+1)] = i
		row.Shortcuts[string(d)[:1]] = i
	}
	return row
}

func (s *PracticeScreen) startSession() tea.Cmd {
	driver, user, course, count := s.driver, s.user, s.course, s.count
	return func() tea.Msg {
		handle, err := driver.Start(context.Background(), user, course, count)
		return sessionStartedMsg{Handle: handle, Err: err}
	}
}

func (s *PracticeScreen) loadPrompt() tea.Cmd {
	s.busy = true
	driver, handle := s.driver, s.handle
	return func() tea.Msg {
		ex, err := driver.CurrentPrompt(context.Background(), handle)
		return promptReadyMsg{Exercise: ex, Err: err}
	}
}

func (s *PracticeScreen) submit(answer string) tea.Cmd {
	s.busy = true
	driver, handle := s.driver, s.handle
	return func() tea.Msg {
		fb, err := driver.SubmitAnswer(context.Background(), handle, answer)
		return answerGradedMsg{Feedback: fb, Err: err}
	}
}

func (s *PracticeScreen) rate(d mastery.Difficulty) tea.Cmd {
	if s.busy {
		return nil
	}
	s.busy = true
	driver, handle := s.driver, s.handle
	return func() tea.Msg {
		fb, err := driver.SubmitDifficulty(context.Background(), handle, string(d))
		return answerAppliedMsg{Feedback: fb, Err: err}
	}
}

func (s *PracticeScreen) advance() tea.Cmd {
	if s.busy {
		return nil
	}
	s.busy = true
	driver, handle := s.driver, s.handle
	return func() tea.Msg {
		fb, err := driver.Advance(context.Background(), handle)
		return answerAppliedMsg{Feedback: fb, Err: err}
	}
}

func (s *PracticeScreen) skipItem() tea.Cmd {
	s.busy = true
	driver, handle := s.driver, s.handle
	return func() tea.Msg {
		return itemSkippedMsg{Err: driver.Skip(context.Background(), handle)}
	}
}

func (s *PracticeScreen) abandon() tea.Cmd {
	s.busy = true
	driver, handle := s.driver, s.handle
	return func() tea.Msg {
		sum, err := driver.Abandon(context.Background(), handle)
		return sessionDoneMsg{Summary: sum, Err: err}
	}
}
