package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// SessionsChangedMsg is delivered to the home screen when the summary
// closes, so it reloads progress counters.
type SessionsChangedMsg struct{}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.Summary
	offset  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.EscapeHandler = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	if s.summary != nil && s.summary.Abandoned {
		return "Session Ended"
	}
	return "Session Summary"
}

// HandlesEscape reports true: Esc returns home and refreshes it.
func (s *SummaryScreen) HandlesEscape() bool { return true }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopToRootMsg{Refresh: SessionsChangedMsg{}} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.summary != nil && s.offset < len(s.summary.ItemResults)-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	title := "Session complete!"
	if sum.Abandoned {
		title = "Session ended early"
	}
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("Course: %s    Duration: %d:%02d", sum.CourseCode, mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Answered: %d/%d        Correct: %d        Accuracy: %.0f%%",
		sum.Answered, sum.Requested, sum.Correct, sum.Accuracy*100)
	if sum.Skipped > 0 {
		statsLine += fmt.Sprintf("        Skipped: %d", sum.Skipped)
	}
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n")

	var changes []string
	if sum.NewlyAcquired > 0 {
		changes = append(changes, lipgloss.NewStyle().Foreground(theme.Success).
			Render(fmt.Sprintf("%d newly acquired", sum.NewlyAcquired)))
	}
	if sum.Regressed > 0 {
		changes = append(changes, lipgloss.NewStyle().Foreground(theme.Error).
			Render(fmt.Sprintf("%d back under acquisition", sum.Regressed)))
	}
	if len(changes) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(changes, "    ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(0, min(width-8, 64))))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Words")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	used := lipgloss.Height(b.String())
	rows := max(1, height-used-1)
	results := sum.ItemResults
	if s.offset < len(results) {
		results = results[s.offset:]
	}
	for i, r := range results {
		if i >= rows {
			break
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderResult(r)))
		b.WriteString("\n")
	}

	return b.String()
}

func renderResult(r session.ItemResult) string {
	score := fmt.Sprintf("%d/%d correct", r.Correct, r.Attempted)
	if r.Attempted == 0 {
		score = "not answered"
	}
	if r.Skipped > 0 {
		score += fmt.Sprintf(", %d skipped", r.Skipped)
	}

	status := r.StatusAfter.Label()
	if r.StatusBefore != r.StatusAfter {
		status = fmt.Sprintf("%s > %s", r.StatusBefore.Label(), r.StatusAfter.Label())
	}

	line := fmt.Sprintf("  %-18s %-7s %-24s %s", r.SurfaceForm, r.Category, score, status)

	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case r.NewlyAcquired():
		style = style.Foreground(theme.Success)
	case r.Regressed():
		style = style.Foreground(theme.Error)
	}
	return style.Render(line)
}

// Summary returns the summary on display.
func (s *SummaryScreen) Summary() *session.Summary {
	return s.summary
}
