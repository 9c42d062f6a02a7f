package spacedrep

import (
	"fmt"

	"github.com/abhisek/vocabdrill/internal/vocab"
)

// IsDue reports whether an item must be reviewed in the next session.
// Not-started items are never due; they are picked up as new items instead.
func IsDue(p vocab.Progress, sessionsCompleted int) bool {
	if p.Status == vocab.StatusNotStarted {
		return false
	}
	if p.Interval <= 1 {
		return true
	}
	return p.LastSeenSession <= sessionsCompleted-(p.Interval-1)
}

// SessionsUntilDue returns how many more sessions must complete before the
// item is due. Returns 0 if already due, -1 for not-started items.
func SessionsUntilDue(p vocab.Progress, sessionsCompleted int) int {
	if p.Status == vocab.StatusNotStarted {
		return -1
	}
	if IsDue(p, sessionsCompleted) {
		return 0
	}
	return p.LastSeenSession + p.Interval - 1 - sessionsCompleted
}

// ReviewStatus describes an item's review status for display.
type ReviewStatus string

const (
	ReviewNotStarted ReviewStatus = "not_started"
	ReviewNotDue     ReviewStatus = "not_due"
	ReviewDue        ReviewStatus = "due"
)

// Status returns the review status for UI display.
func Status(p vocab.Progress, sessionsCompleted int) ReviewStatus {
	switch {
	case p.Status == vocab.StatusNotStarted:
		return ReviewNotStarted
	case IsDue(p, sessionsCompleted):
		return ReviewDue
	default:
		return ReviewNotDue
	}
}

// DueLabel renders the due column of the vocabulary list.
func DueLabel(p vocab.Progress, sessionsCompleted int) string {
	n := SessionsUntilDue(p, sessionsCompleted)
	switch {
	case n < 0:
		return "N/A"
	case n == 0:
		return "Due now"
	case n == 1:
		return "In 1 session"
	default:
		return fmt.Sprintf("In %d sessions", n)
	}
}
