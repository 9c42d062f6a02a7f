package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// ItemSource is the part of store.ProgressRepo the selector needs.
type ItemSource interface {
	ItemsWithProgress(ctx context.Context, userID, courseCode string) ([]vocab.ItemProgress, error)
	SessionCounter(ctx context.Context, userID, courseCode string) (int, error)
}

// Selector builds the ordered item list for a new session.
type Selector struct {
	source ItemSource
	rng    *rand.Rand
	logger *slog.Logger
}

// NewSelector creates a Selector. A nil rng is seeded randomly.
func NewSelector(source ItemSource, rng *rand.Rand, logger *slog.Logger) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{source: source, rng: rng, logger: logger}
}

// Select returns exactly count items for the user's next session in the
// course. Items due for review come first; when there are more of them
// than count, a uniform random subset is taken. Remaining room is filled
// with not-started items in store order and then with random draws, with
// replacement, from the whole course.
func (s *Selector) Select(ctx context.Context, userID, courseCode string, count int) ([]SelectedItem, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}

	rows, err := s.source.ItemsWithProgress(ctx, userID, courseCode)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("select items for %s: %w", courseCode, vocab.ErrEmptyCourse)
	}

	completed, err := s.source.SessionCounter(ctx, userID, courseCode)
	if err != nil {
		return nil, fmt.Errorf("load session counter: %w", err)
	}

	var mandatory, notStarted []vocab.ItemProgress
	for _, r := range rows {
		switch {
		case r.Progress.Status == vocab.StatusNotStarted || r.Progress.Status == "":
			notStarted = append(notStarted, r)
		case spacedrep.IsDue(r.Progress, completed):
			mandatory = append(mandatory, r)
		}
	}

	selected := make([]SelectedItem, 0, count)

	if len(mandatory) > count {
		s.rng.Shuffle(len(mandatory), func(i, j int) {
			mandatory[i], mandatory[j] = mandatory[j], mandatory[i]
		})
		for _, r := range mandatory[:count] {
			selected = append(selected, selectedItem(r, CategoryDue))
		}
		s.logSelection(userID, courseCode, completed, selected)
		return selected, nil
	}

	for _, r := range mandatory {
		selected = append(selected, selectedItem(r, CategoryDue))
	}
	for _, r := range notStarted {
		if len(selected) == count {
			break
		}
		selected = append(selected, selectedItem(r, CategoryNew))
	}
	for len(selected) < count {
		selected = append(selected, selectedItem(rows[s.rng.IntN(len(rows))], CategoryRandom))
	}

	s.logSelection(userID, courseCode, completed, selected)
	return selected, nil
}

func selectedItem(r vocab.ItemProgress, c Category) SelectedItem {
	return SelectedItem{Item: r.Item, Progress: r.Progress, Category: c}
}

func (s *Selector) logSelection(userID, courseCode string, completed int, items []SelectedItem) {
	for i, it := range items {
		s.logger.Debug("selected item",
			"user", userID,
			"course", courseCode,
			"position", i,
			"item_id", it.Item.ID,
			"surface_form", it.Item.SurfaceForm,
			"category", it.Category,
			"status", it.Progress.Status,
			"interval", it.Progress.Interval,
			"last_seen", it.Progress.LastSeenSession,
			"sessions_completed", completed,
		)
	}
}
