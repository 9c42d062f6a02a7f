package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

const titleFull = `╷ ╷╭─╮╭─╮╭─╮┌─╮  ┌─╮┌─╮╷╷  ╷
│╭╯│ ││  ├─┤├─┤  │ │├┬╯││  │
╰╯ ╰─╯╰─╯╵ ╵└─╯  └─╯╵╰╴╵╰─╴╰─╴`

const titleCompact = "V O C A B D R I L L"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	return max(20, min(frameWidth-6, 60))
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders the progress counters in a bordered box.
func renderStatsBar(st Stats, loaded bool, errMsg string, cw int, compact bool) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var body string
	switch {
	case errMsg != "":
		body = lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load progress: " + errMsg)
	case !loaded:
		body = dim.Render("Loading progress...")
	case st.Course == "":
		body = dim.Render(fmt.Sprintf("%d courses available", len(st.Courses)))
	default:
		acquired := lipgloss.NewStyle().Foreground(theme.StatusColor(vocab.StatusAcquired)).Bold(true)
		learning := lipgloss.NewStyle().Foreground(theme.StatusColor(vocab.StatusUnderAcquisition)).Bold(true)
		due := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

		if compact {
			body = fmt.Sprintf("%s  %s  %s",
				acquired.Render(fmt.Sprintf("✓%d", st.ByStatus[vocab.StatusAcquired])),
				learning.Render(fmt.Sprintf("~%d", st.ByStatus[vocab.StatusUnderAcquisition])),
				due.Render(fmt.Sprintf("!%d", st.Due)),
			)
		} else {
			body = fmt.Sprintf("%s  %s  %s\n%s",
				acquired.Render(fmt.Sprintf("✓ %d ACQUIRED", st.ByStatus[vocab.StatusAcquired])),
				learning.Render(fmt.Sprintf("~ %d LEARNING", st.ByStatus[vocab.StatusUnderAcquisition])),
				due.Render(fmt.Sprintf("! %d DUE", st.Due)),
				dim.Render(fmt.Sprintf("%s · %d words · %d sessions completed", st.Course, st.Items, st.SessionsCompleted)),
			)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Render(body)
}

// renderMenu renders the menu in a box of the content width.
func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Render(m.View())
}

// renderFrame centers the dashboard in the content area.
func renderFrame(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
