package home

import (
	"context"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/countpicker"
	"github.com/abhisek/vocabdrill/internal/screens/history"
	"github.com/abhisek/vocabdrill/internal/screens/practice"
	"github.com/abhisek/vocabdrill/internal/screens/summary"
	"github.com/abhisek/vocabdrill/internal/screens/vocablist"
	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// Options are the collaborators of the home screen and the screens it
// opens.
type Options struct {
	Sessions   practice.Driver
	Vocabulary store.VocabularyRepo
	Progress   store.ProgressRepo
	Events     store.EventRepo
	Demoter    vocablist.Demoter

	User   string
	Course string
	Count  int

	Logger *slog.Logger
}

// Stats are the counters shown on the dashboard.
type Stats struct {
	Courses           []string
	Course            string
	Items             int
	ByStatus          map[vocab.Status]int
	Due               int
	SessionsCompleted int
}

type statsLoadedMsg struct {
	Stats Stats
	Err   error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	opts   Options
	menu   components.Menu
	stats  Stats
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	h := &HomeScreen{opts: opts}
	h.stats.Course = opts.Course
	h.menu = h.buildMenu()
	return h
}

func (h *HomeScreen) buildMenu() components.Menu {
	course := h.stats.Course
	needsCourse := course == ""
	courseHint := ""
	if needsCourse && h.loaded {
		courseHint = "pick a course with --course"
	}

	items := []components.MenuItem{
		{Label: "START PRACTICE", Action: func() tea.Cmd {
			picker := countpicker.New(h.opts.Sessions, h.opts.User, course, h.stats.Courses, h.opts.Count, h.opts.Logger)
			return func() tea.Msg { return router.PushScreenMsg{Screen: picker} }
		}},
		{Label: "VOCABULARY", Disabled: needsCourse, Hint: courseHint, Action: func() tea.Cmd {
			list := vocablist.New(h.opts.Progress, h.opts.Vocabulary, h.opts.Demoter, h.opts.User, course)
			return func() tea.Msg { return router.PushScreenMsg{Screen: list} }
		}},
		{Label: "HISTORY", Disabled: needsCourse || h.opts.Events == nil, Hint: courseHint, Action: func() tea.Cmd {
			hist := history.New(h.opts.Events, h.opts.User, course)
			return func() tea.Msg { return router.PushScreenMsg{Screen: hist} }
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	m := components.NewMenu(items)
	if h.menu.Selected < len(items) && !items[h.menu.Selected].Disabled {
		m.Selected = h.menu.Selected
	}
	return m
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			h.opts.Logger.Warn("failed to load progress", "user", h.opts.User, "error", msg.Err)
		} else {
			h.errMsg = ""
			h.stats = msg.Stats
		}
		h.menu = h.buildMenu()
		return h, nil

	case summary.SessionsChangedMsg:
		return h, h.loadStats()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 90
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.stats, h.loaded, h.errMsg, cw, compact))
	sections = append(sections, renderMenu(h.menu, cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// Stats returns the dashboard counters.
func (h *HomeScreen) Stats() Stats {
	return h.stats
}

// loadStats reads the course list and, for the active course, the
// learner's progress.
func (h *HomeScreen) loadStats() tea.Cmd {
	opts := h.opts
	current := h.stats.Course
	return func() tea.Msg {
		st, err := LoadStats(context.Background(), opts.Vocabulary, opts.Progress, opts.User, current)
		return statsLoadedMsg{Stats: st, Err: err}
	}
}

// LoadStats collects dashboard counters. When course is empty and only
// one course exists, that course is used.
func LoadStats(ctx context.Context, vocabulary store.VocabularyRepo, progress store.ProgressRepo, user, course string) (Stats, error) {
	st := Stats{Course: course, ByStatus: make(map[vocab.Status]int)}
	if vocabulary == nil || progress == nil {
		return st, nil
	}

	courses, err := vocabulary.Courses(ctx)
	if err != nil {
		return st, err
	}
	st.Courses = courses
	if st.Course == "" && len(courses) == 1 {
		st.Course = courses[0]
	}
	if st.Course == "" {
		return st, nil
	}

	completed, err := progress.SessionCounter(ctx, user, st.Course)
	if err != nil {
		return st, err
	}
	st.SessionsCompleted = completed

	rows, err := progress.ItemsWithProgress(ctx, user, st.Course)
	if err != nil {
		return st, err
	}
	st.Items = len(rows)
	for _, r := range rows {
		status := r.Progress.Status
		if status == "" {
			status = vocab.StatusNotStarted
		}
		st.ByStatus[status]++
		if spacedrep.IsDue(r.Progress, completed) {
			st.Due++
		}
	}
	return st, nil
}
