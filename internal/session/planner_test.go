package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabdrill/internal/vocab"
)

func acquired(itemID string, interval, lastSeen int) vocab.Progress {
	return vocab.Progress{
		UserID:          "u",
		ItemID:          itemID,
		CourseCode:      "L1",
		Status:          vocab.StatusAcquired,
		Interval:        interval,
		LastSeenSession: lastSeen,
	}
}

func ids(items []SelectedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Item.ID
	}
	return out
}

func TestSelect_NewUserGetsNotStartedInOrder(t *testing.T) {
	progress, _, _ := walkRunFixture()
	sel := NewSelector(progress, seeded(), nil)

	got, err := sel.Select(context.Background(), "u", "L1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(got))
	for _, it := range got {
		assert.Equal(t, vocab.StatusNotStarted, it.Progress.Status)
		assert.Equal(t, CategoryNew, it.Category)
	}
}

func TestSelect_ExactLengthWithRepeats(t *testing.T) {
	progress, _, _ := walkRunFixture()
	sel := NewSelector(progress, seeded(), nil)

	for _, count := range CountChoices {
		got, err := sel.Select(context.Background(), "u", "L1", count)
		require.NoError(t, err)
		require.Len(t, got, count)
		assert.Equal(t, []string{"1", "2"}, ids(got[:2]))
		for _, it := range got[2:] {
			assert.Equal(t, CategoryRandom, it.Category)
			assert.Contains(t, []string{"1", "2"}, it.Item.ID)
		}
	}
}

func TestSelect_DueBeforeNew(t *testing.T) {
	progress := newMockProgress(
		item("1", "walk", vocab.PosVerb, "caminar"),
		item("2", "run", vocab.PosVerb, "correr"),
		item("3", "book", vocab.PosNoun, "libro"),
	)
	progress.set(acquired("3", 1, 1))
	progress.counters["u/L1"] = 1
	sel := NewSelector(progress, seeded(), nil)

	got, err := sel.Select(context.Background(), "u", "L1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, ids(got))
	assert.Equal(t, CategoryDue, got[0].Category)
	assert.Equal(t, CategoryNew, got[1].Category)
}

func TestSelect_IntervalWindow(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		lastSeen int
		wantDue  bool
	}{
		{"interval 4 last seen 2", 4, 2, true},
		{"interval 4 last seen 3", 4, 3, false},
		{"interval 1 always due", 1, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := newMockProgress(item("1", "walk", vocab.PosVerb, "caminar"))
			progress.set(acquired("1", tt.interval, tt.lastSeen))
			progress.counters["u/L1"] = 5
			sel := NewSelector(progress, seeded(), nil)

			got, err := sel.Select(context.Background(), "u", "L1", 1)
			require.NoError(t, err)
			require.Len(t, got, 1)
			if tt.wantDue {
				assert.Equal(t, CategoryDue, got[0].Category)
			} else {
				assert.Equal(t, CategoryRandom, got[0].Category)
			}
		})
	}
}

func TestSelect_MandatoryOverflowIsSampled(t *testing.T) {
	var items []vocab.Item
	for i := 1; i <= 20; i++ {
		items = append(items, item(fmt.Sprint(i), fmt.Sprintf("word%d", i), vocab.PosOther, ""))
	}
	progress := newMockProgress(items...)
	for _, it := range items {
		progress.set(acquired(it.ID, 1, 3))
	}
	progress.counters["u/L1"] = 3

	got, err := NewSelector(progress, seeded(), nil).Select(context.Background(), "u", "L1", 10)
	require.NoError(t, err)
	require.Len(t, got, 10)

	seen := make(map[string]bool)
	for _, it := range got {
		assert.Equal(t, CategoryDue, it.Category)
		assert.False(t, seen[it.Item.ID], "item %s selected twice", it.Item.ID)
		seen[it.Item.ID] = true
	}

	again, err := NewSelector(progress, seeded(), nil).Select(context.Background(), "u", "L1", 10)
	require.NoError(t, err)
	assert.Equal(t, ids(got), ids(again), "same seed gives same selection")
}

func TestSelect_Errors(t *testing.T) {
	sel := NewSelector(newMockProgress(), seeded(), nil)

	_, err := sel.Select(context.Background(), "u", "L1", 5)
	assert.True(t, errors.Is(err, vocab.ErrEmptyCourse))

	_, err = sel.Select(context.Background(), "u", "L1", 0)
	assert.True(t, errors.Is(err, ErrInvalidCount))
}
