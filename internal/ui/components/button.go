package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ButtonRow is a horizontal group of buttons with one active at a time.
// Left and right move the focus, enter presses the active button, and a
// key listed in Shortcuts presses its button directly.
type ButtonRow struct {
	Buttons   []Button
	Shortcuts map[string]int
	Active    int
}

// NewButtonRow creates a row with the first button active.
func NewButtonRow(buttons ...Button) ButtonRow {
	r := ButtonRow{Buttons: buttons, Shortcuts: map[string]int{}}
	r.focus(0)
	return r
}

// Update handles key events.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}

	key := kmsg.String()
	switch key {
	case "left", "h", "shift+tab":
		if r.Active > 0 {
			r.focus(r.Active - 1)
		}
		return r, nil
	case "right", "l", "tab":
		if r.Active < len(r.Buttons)-1 {
			r.focus(r.Active + 1)
		}
		return r, nil
	}

	if i, ok := r.Shortcuts[strings.ToLower(key)]; ok && i < len(r.Buttons) {
		r.focus(i)
		if b := r.Buttons[i]; b.OnPress != nil {
			return r, b.OnPress()
		}
		return r, nil
	}

	var cmd tea.Cmd
	r.Buttons[r.Active], cmd = r.Buttons[r.Active].Update(msg)
	return r, cmd
}

// View renders the buttons side by side.
func (r ButtonRow) View() string {
	parts := make([]string, 0, 2*len(r.Buttons))
	for i, b := range r.Buttons {
		if i > 0 {
			parts = append(parts, "  ")
		}
		parts = append(parts, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (r *ButtonRow) focus(i int) {
	r.Active = i
	for j := range r.Buttons {
		r.Buttons[j].Active = j == i
	}
}
