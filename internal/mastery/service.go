package mastery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// ProgressUpdater is the part of store.ProgressRepo the service needs.
type ProgressUpdater interface {
	UpdateProgress(ctx context.Context, userID, itemID, courseCode string, fn store.ProgressFunc) (vocab.Progress, error)
}

// Service applies answers to stored mastery state.
type Service struct {
	progress ProgressUpdater
	logger   *slog.Logger
}

// NewService creates a mastery service.
func NewService(progress ProgressUpdater, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{progress: progress, logger: logger}
}

// Answer is one graded answer to apply.
type Answer struct {
	UserID     string
	ItemID     string
	CourseCode string
	Correct    bool
	Difficulty Difficulty
}

// Process applies an answer to the user's progress on the item inside one
// store transaction. A missing progress record is logged and skipped; the
// returned transition is then nil.
func (s *Service) Process(ctx context.Context, a Answer) (*StateTransition, error) {
	var tr StateTransition
	_, err := s.progress.UpdateProgress(ctx, a.UserID, a.ItemID, a.CourseCode,
		func(p vocab.Progress, completed int) (vocab.Progress, error) {
			next, t := Transition(p, a.Correct, a.Difficulty, completed)
			tr = t
			return next, nil
		})
	if errors.Is(err, vocab.ErrNotFound) {
		s.logger.Warn("no progress record for answer",
			"user", a.UserID,
			"item_id", a.ItemID,
			"course", a.CourseCode,
		)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("process answer: %w", err)
	}

	s.logger.Debug("mastery updated",
		"user", a.UserID,
		"item_id", a.ItemID,
		"from", tr.From,
		"to", tr.To,
		"interval", tr.IntervalAfter,
		"trigger", tr.Trigger,
	)
	return &tr, nil
}

// Demote manually moves an acquired item back under acquisition. It
// returns vocab.ErrNotFound when the user has no record for the item.
func (s *Service) Demote(ctx context.Context, userID, itemID, courseCode string) (*StateTransition, error) {
	var tr StateTransition
	_, err := s.progress.UpdateProgress(ctx, userID, itemID, courseCode,
		func(p vocab.Progress, _ int) (vocab.Progress, error) {
			next, t := Demote(p)
			tr = t
			return next, nil
		})
	if err != nil {
		return nil, fmt.Errorf("demote item %s: %w", itemID, err)
	}
	if tr.From != tr.To {
		s.logger.Info("item demoted", "user", userID, "item_id", itemID)
	}
	return &tr, nil
}
