// Package vocablist shows a learner's words in a course grouped by
// lesson, with status and due label, and lets the learner demote an
// acquired word back under acquisition.
package vocablist

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// Demoter moves an acquired item back under acquisition.
// *mastery.Service implements it.
type Demoter interface {
	Demote(ctx context.Context, userID, itemID, courseCode string) (*mastery.StateTransition, error)
}

var _ Demoter = (*mastery.Service)(nil)

type rowKind int

const (
	rowLessonHeader rowKind = iota
	rowItem
)

type row struct {
	kind   rowKind
	lesson string
	item   *vocab.ItemProgress
}

type listLoadedMsg struct {
	Items     []vocab.ItemProgress
	Completed int
	Err       error
}

type demotedMsg struct {
	ItemID string
	Err    error
}

// ListScreen displays the vocabulary of a course.
type ListScreen struct {
	progress   store.ProgressRepo
	vocabulary store.VocabularyRepo
	demoter    Demoter
	user       string
	course     string

	items        []vocab.ItemProgress
	completed    int
	rows         []row
	cursor       int
	scrollOffset int
	loaded       bool
	confirming   bool
	status       string
	errMsg       string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)
var _ screen.EscapeHandler = (*ListScreen)(nil)

// New creates a ListScreen for the user's items in course.
func New(progress store.ProgressRepo, vocabulary store.VocabularyRepo, demoter Demoter, user, course string) *ListScreen {
	return &ListScreen{
		progress:   progress,
		vocabulary: vocabulary,
		demoter:    demoter,
		user:       user,
		course:     course,
	}
}

func (s *ListScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ListScreen) Title() string {
	return "Vocabulary · " + s.course
}

func (s *ListScreen) HandlesEscape() bool {
	return s.confirming
}

// KeyHints returns the key binding hints for the footer.
func (s *ListScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Demote"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Lesson"},
		{Key: "Enter", Description: "Details"},
		{Key: "D", Description: "Demote"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.setItems(msg.Items, msg.Completed)
		return s, nil

	case demotedMsg:
		if msg.Err != nil {
			s.status = "Demotion failed: " + msg.Err.Error()
			return s, nil
		}
		s.status = fmt.Sprintf("Item %s is under acquisition again.", msg.ItemID)
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ListScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirming {
		switch key {
		case "y", "Y":
			s.confirming = false
			return s, s.demote()
		case "n", "N", "esc":
			s.confirming = false
			s.status = ""
		}
		return s, nil
	}

	switch key {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "tab":
		s.nextLesson()
	case "shift+tab":
		s.prevLesson()
	case "enter":
		return s, s.openDetail()
	case "d", "D":
		s.requestDemotion()
	case "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ListScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\n  Loading vocabulary...")
	case len(s.items) == 0:
		return center.Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("\n\n  No vocabulary in course %s.", s.course))
	}

	listHeight := height - 2
	s.adjustScroll(listHeight)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < listHeight; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowLessonHeader:
			lines = append(lines, renderLessonHeader(r.lesson, width))
		case rowItem:
			lines = append(lines, s.renderItemRow(r, i == s.cursor, width))
		}
	}

	footer := s.status
	if s.confirming {
		if cur := s.current(); cur != nil {
			footer = fmt.Sprintf("Demote %q back under acquisition? [Y/N]", cur.Item.SurfaceForm)
		}
	}
	style := theme.Hint
	if s.confirming {
		style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}

	return strings.Join(lines, "\n") + "\n\n" + style.Render("  "+footer)
}

// setItems rebuilds the rows, keeping the cursor on the same item.
func (s *ListScreen) setItems(items []vocab.ItemProgress, completed int) {
	var keep string
	if cur := s.current(); cur != nil {
		keep = cur.Item.ID
	}

	s.items = items
	s.completed = completed
	s.rows = buildRows(s.items)
	s.cursor = 0

	first := -1
	for i, r := range s.rows {
		if r.kind != rowItem {
			continue
		}
		if first < 0 {
			first = i
		}
		if r.item.Item.ID == keep {
			s.cursor = i
			return
		}
	}
	if first >= 0 {
		s.cursor = first
	}
}

// buildRows groups items by lesson, lessons in order of first appearance.
func buildRows(items []vocab.ItemProgress) []row {
	var order []string
	byLesson := make(map[string][]int)
	for i, it := range items {
		l := it.Item.LessonTitle
		if _, ok := byLesson[l]; !ok {
			order = append(order, l)
		}
		byLesson[l] = append(byLesson[l], i)
	}

	var rows []row
	for _, l := range order {
		rows = append(rows, row{kind: rowLessonHeader, lesson: l})
		for _, i := range byLesson[l] {
			rows = append(rows, row{kind: rowItem, lesson: l, item: &items[i]})
		}
	}
	return rows
}

func (s *ListScreen) current() *vocab.ItemProgress {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].kind != rowItem {
		return nil
	}
	return s.rows[s.cursor].item
}

// moveCursor moves the cursor by delta, skipping lesson headers.
func (s *ListScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowItem {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextLesson jumps the cursor to the first item of the next lesson.
func (s *ListScreen) nextLesson() {
	if len(s.rows) == 0 {
		return
	}
	lesson := s.rows[s.cursor].lesson
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowItem && s.rows[i].lesson != lesson {
			s.cursor = i
			return
		}
	}
}

// prevLesson jumps the cursor to the first item of the previous lesson.
func (s *ListScreen) prevLesson() {
	if len(s.rows) == 0 {
		return
	}
	// Walk back to the header of the current lesson, then to the header
	// before it.
	headers := 0
	for i := s.cursor; i >= 0; i-- {
		if s.rows[i].kind != rowLessonHeader {
			continue
		}
		headers++
		if headers == 2 {
			s.cursor = i
			s.moveCursor(1)
			return
		}
	}
}

// adjustScroll keeps the cursor and its lesson header visible.
func (s *ListScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowLessonHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *ListScreen) requestDemotion() {
	cur := s.current()
	if cur == nil {
		return
	}
	if cur.Progress.Status != vocab.StatusAcquired {
		s.status = fmt.Sprintf("%q is %s; only acquired words can be demoted.",
			cur.Item.SurfaceForm, strings.ToLower(cur.Progress.Status.Label()))
		return
	}
	s.confirming = true
}

func (s *ListScreen) openDetail() tea.Cmd {
	cur := s.current()
	if cur == nil {
		return nil
	}
	detail := newItemDetail(*cur, s.completed, s.vocabulary)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func (s *ListScreen) load() tea.Cmd {
	progress, user, course := s.progress, s.user, s.course
	return func() tea.Msg {
		ctx := context.Background()
		completed, err := progress.SessionCounter(ctx, user, course)
		if err != nil {
			return listLoadedMsg{Err: err}
		}
		items, err := progress.ItemsWithProgress(ctx, user, course)
		return listLoadedMsg{Items: items, Completed: completed, Err: err}
	}
}

func (s *ListScreen) demote() tea.Cmd {
	cur := s.current()
	if cur == nil || s.demoter == nil {
		return nil
	}
	demoter, user, course, id := s.demoter, s.user, s.course, cur.Item.ID
	return func() tea.Msg {
		_, err := demoter.Demote(context.Background(), user, id, course)
		return demotedMsg{ItemID: id, Err: err}
	}
}

// renderLessonHeader renders a lesson section header.
func renderLessonHeader(lesson string, width int) string {
	if lesson == "" {
		lesson = "Unsorted"
	}
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(lesson))
}

// renderItemRow renders a single item row.
func (s *ListScreen) renderItemRow(r row, selected bool, width int) string {
	it := r.item
	status := it.Progress.Status
	if status == "" {
		status = vocab.StatusNotStarted
	}

	due := spacedrep.DueLabel(it.Progress, s.completed)
	statusLabel := status.Label()

	const (
		statusWidth = 18
		dueWidth    = 15
		posWidth    = 6
	)
	showTranslation := !layout.IsCompactWidth(width)

	nameWidth := width - 10 - statusWidth - dueWidth - posWidth
	if showTranslation {
		nameWidth /= 2
	}
	nameWidth = max(nameWidth, 10)

	name := truncate(it.Item.SurfaceForm, nameWidth)
	cursor := "  "
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		cursor = "▸ "
		nameStyle = nameStyle.Foreground(theme.Primary).Bold(true)
	}
	statusStyle := lipgloss.NewStyle().Foreground(theme.StatusColor(status))
	dueStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if spacedrep.Status(it.Progress, s.completed) == spacedrep.ReviewDue {
		dueStyle = dueStyle.Foreground(theme.Accent)
	}

	line := fmt.Sprintf("  %s%s %s %s %s %s",
		cursor,
		statusStyle.Render(glyph(mastery.ResolveDisplayState(it.Progress, s.completed))),
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%-*s", posWidth, it.Item.PartOfSpeech)),
		statusStyle.Render(fmt.Sprintf("%-*s", statusWidth, statusLabel)),
		dueStyle.Render(due),
	)
	if showTranslation && it.Item.Translation != "" {
		line += "  " + theme.Hint.Render(truncate(it.Item.Translation, nameWidth))
	}
	return line
}

// glyph marks an item's display state in the list.
func glyph(d mastery.DisplayState) string {
	switch d {
	case mastery.DisplayLearning:
		return "◐"
	case mastery.DisplayDue:
		return "↻"
	case mastery.DisplayAcquired:
		return "●"
	default:
		return "○"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
