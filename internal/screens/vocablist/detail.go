package vocablist

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

type contextsLoadedMsg struct {
	Contexts []vocab.ContextEntry
	Err      error
}

// ItemDetailScreen shows an item, its progress and its context sentences.
type ItemDetailScreen struct {
	item       vocab.ItemProgress
	completed  int
	vocabulary store.VocabularyRepo
	contexts   []vocab.ContextEntry
	loaded     bool
	errMsg     string
}

var _ screen.Screen = (*ItemDetailScreen)(nil)
var _ screen.KeyHintProvider = (*ItemDetailScreen)(nil)

func newItemDetail(item vocab.ItemProgress, completed int, vocabulary store.VocabularyRepo) *ItemDetailScreen {
	return &ItemDetailScreen{item: item, completed: completed, vocabulary: vocabulary}
}

func (d *ItemDetailScreen) Init() tea.Cmd {
	if d.vocabulary == nil {
		d.loaded = true
		return nil
	}
	vocabulary, id := d.vocabulary, d.item.Item.ID
	return func() tea.Msg {
		c, err := vocabulary.ContextsByItem(context.Background(), id)
		return contextsLoadedMsg{Contexts: c, Err: err}
	}
}

func (d *ItemDetailScreen) Title() string { return d.item.Item.SurfaceForm }

func (d *ItemDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(contextsLoadedMsg); ok {
		d.loaded = true
		d.contexts = msg.Contexts
		if msg.Err != nil {
			d.errMsg = msg.Err.Error()
		}
	}
	return d, nil
}

func (d *ItemDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *ItemDetailScreen) View(width, height int) string {
	it, p := d.item.Item, d.item.Progress
	status := p.Status
	if status == "" {
		status = vocab.StatusNotStarted
	}
	contentWidth := min(width-8, 70)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  " + it.SurfaceForm))
	if it.Translation != "" {
		b.WriteString(theme.Translation.Render("  " + it.Translation))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.StatusColor(status)).
		Render("  " + status.Label()))
	b.WriteString("\n\n")

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)
	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %-10s ", label)) + valStyle.Render(value) + "\n")
	}
	field("Item", it.ID)
	field("Part", string(it.PartOfSpeech))
	field("Lesson", it.LessonTitle)
	field("Mode", string(it.Mode))
	field("Level", it.CEFRLevel)
	field("Domain", it.Domain)
	field("Review", spacedrep.DueLabel(p, d.completed))
	if status != vocab.StatusNotStarted {
		field("Interval", fmt.Sprintf("%d session(s)", p.Interval))
		field("Last seen", fmt.Sprintf("session %d", p.LastSeenSession))
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Contexts"))
	b.WriteString("\n")
	switch {
	case d.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + d.errMsg))
	case !d.loaded:
		b.WriteString(dimStyle.Render("  Loading..."))
	case len(d.contexts) == 0:
		b.WriteString(dimStyle.Italic(true).Render("  No context sentences; this word is skipped in practice."))
	default:
		for _, c := range d.contexts {
			b.WriteString(lipgloss.NewStyle().
				Width(contentWidth).
				PaddingLeft(2).
				Foreground(theme.Text).
				Render("• " + c.Sentence))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
