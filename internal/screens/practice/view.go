package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/exercise"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// renderInfoLine renders the progress line above the exercise.
func (s *PracticeScreen) renderInfoLine(width int) string {
	kind := "Fill the gap"
	if s.ex.Kind == exercise.KindMultipleChoice {
		kind = "Choose the word"
	}
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + kind)

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  ",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.correct,
		))

	bar := components.NewCountBar("", s.position, s.count, min(30, width/3)).View()

	gap := width - lipgloss.Width(left) - lipgloss.Width(bar) - lipgloss.Width(right) - 4
	if gap < 1 {
		return left + "  " + right
	}
	return left + strings.Repeat(" ", gap/2) + bar + strings.Repeat(" ", gap-gap/2) + right
}

func (s *PracticeScreen) renderHeader(width int) string {
	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")
	return b.String()
}

// renderExercise renders the current prompt with its answer control.
func (s *PracticeScreen) renderExercise(width, height int) string {
	var b strings.Builder
	b.WriteString(s.renderHeader(width))
	b.WriteString(s.renderPrompt(width))

	if s.ex.Kind == exercise.KindMultipleChoice {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
		if !layout.IsCompactHeight(height) {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("\nPress A-%s or use arrows + Enter", components.Label(len(s.ex.Options)-1))))
		}
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View()))
	return b.String()
}

func (s *PracticeScreen) renderPrompt(width int) string {
	promptWidth := min(width-8, 76)
	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Prompt.Width(promptWidth).Align(lipgloss.Center).Render(s.ex.Prompt)))
	b.WriteString("\n")
	if s.ex.Kind == exercise.KindGapFill && s.ex.Translation != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Translation.Render("("+s.ex.Translation+")")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// renderFeedback renders the graded answer and the rating or Next control.
func (s *PracticeScreen) renderFeedback(width, height int) string {
	fb := s.fb

	var b strings.Builder
	b.WriteString(s.renderHeader(width))

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if fb.Correct {
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(
			fmt.Sprintf("Correct answer: %s", fb.CorrectAnswer)))
	}
	b.WriteString("\n\n")

	contextWidth := min(width-8, 76)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(contextWidth).Align(lipgloss.Center).Foreground(theme.Text).
			Render(highlight(s.ex.Context, s.ex.Answer))))
	b.WriteString("\n\n")

	if s.ex.Kind == exercise.KindMultipleChoice && !layout.IsCompactHeight(height) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
		b.WriteString("\n")
	}

	if fb.NeedsRating {
		b.WriteString(center.Foreground(theme.TextDim).Render("How hard was it?"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.rating.View()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.next.View()))
	}
	return b.String()
}

// highlight emphasizes the first occurrence of word in sentence.
func highlight(sentence, word string) string {
	i := strings.Index(sentence, word)
	if word == "" || i < 0 {
		return sentence
	}
	mark := lipgloss.NewStyle().Foreground(theme.StatusColor(vocab.StatusAcquired)).Bold(true).Underline(true)
	return sentence[:i] + mark.Render(sentence[i:i+len(word)]) + sentence[i+len(word):]
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Answers so far are kept. The session will not count as completed."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your session...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
