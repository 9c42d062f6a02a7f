// Package countpicker asks for the course, when none is configured, and
// the number of exercises before a practice session starts.
package countpicker

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/practice"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// PickerScreen lets the learner choose what to practise.
type PickerScreen struct {
	driver  practice.Driver
	user    string
	courses []string
	logger  *slog.Logger

	course      string
	courseMenu  components.Menu
	countMenu   components.Menu
	pickCourse  bool
	defaultSize int
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker. When course is empty and several courses exist
// the learner picks one first. defaultCount preselects a count choice
// when it is one of session.CountChoices.
func New(driver practice.Driver, user, course string, courses []string, defaultCount int, logger *slog.Logger) *PickerScreen {
	p := &PickerScreen{
		driver:      driver,
		user:        user,
		courses:     courses,
		logger:      logger,
		course:      course,
		defaultSize: defaultCount,
	}
	if p.course == "" && len(courses) == 1 {
		p.course = courses[0]
	}
	p.pickCourse = p.course == "" && len(courses) > 1

	items := make([]components.MenuItem, len(courses))
	for i, c := range courses {
		items[i] = components.MenuItem{Label: c, Action: p.chooseCourse(c)}
	}
	p.courseMenu = components.NewMenu(items)

	p.countMenu = p.newCountMenu()
	return p
}

func (p *PickerScreen) newCountMenu() components.Menu {
	items := make([]components.MenuItem, len(session.CountChoices))
	for i, n := range session.CountChoices {
		item := components.MenuItem{
			Label:  fmt.Sprintf("%3d exercises", n),
			Action: p.chooseCount(n),
		}
		if n == p.defaultSize {
			item.Hint = "default"
		}
		items[i] = item
	}
	m := components.NewMenu(items)
	if i := slices.Index(session.CountChoices, p.defaultSize); i >= 0 {
		m.Selected = i
	}
	return m
}

func (p *PickerScreen) chooseCourse(code string) func() tea.Cmd {
	return func() tea.Cmd {
		p.course = code
		p.pickCourse = false
		return nil
	}
}

func (p *PickerScreen) chooseCount(n int) func() tea.Cmd {
	return func() tea.Cmd {
		if p.course == "" {
			return nil
		}
		next := practice.New(p.driver, p.user, p.course, n, p.logger)
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	}
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Title() string {
	return "New Session"
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	hint := "Exercises"
	if p.pickCourse {
		hint = "Course"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: hint},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	if p.pickCourse {
		p.courseMenu, cmd = p.courseMenu.Update(msg)
		return p, cmd
	}
	p.countMenu, cmd = p.countMenu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if p.course == "" && len(p.courses) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No courses yet. Import vocabulary with `vocabdrill import <file>`.")
	}

	var title, body string
	if p.pickCourse {
		title = "Which course?"
		body = p.courseMenu.View()
	} else {
		title = fmt.Sprintf("How many exercises from %s?", p.course)
		body = p.countMenu.View()
	}

	content := theme.Title.Render(title) + "\n\n" + body + "\n" +
		theme.Hint.Render("Press 1-"+strconv.Itoa(min(9, p.menuLen()))+" to choose directly")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (p *PickerScreen) menuLen() int {
	if p.pickCourse {
		return len(p.courseMenu.Items)
	}
	return len(p.countMenu.Items)
}

// Course returns the chosen course, "" until one is known.
func (p *PickerScreen) Course() string {
	return p.course
}
