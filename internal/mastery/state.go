package mastery

import (
	"strings"

	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// Difficulty is the learner's rating of a correctly answered exercise.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyAverage   Difficulty = "average"
	DifficultyDifficult Difficulty = "difficult"
)

// Difficulties lists the ratings in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyAverage, DifficultyDifficult}

// ParseDifficulty maps a label to a Difficulty. A missing label counts as
// difficult; any other unrecognised label keeps the interval, like average.
func ParseDifficulty(label string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(label))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyDifficult, "":
		return DifficultyDifficult
	default:
		return DifficultyAverage
	}
}

// StateTransition records a mastery change for feedback and event logging.
type StateTransition struct {
	ItemID         string
	From           vocab.Status
	To             vocab.Status
	IntervalBefore int
	IntervalAfter  int
	Trigger        string // "first-answer", "correct", "incorrect", "rated-easy", "rated-difficult", "rated-average", "demoted"
}

// Regressed reports whether the item fell back from Acquired.
func (t StateTransition) Regressed() bool {
	return t.From == vocab.StatusAcquired && t.To == vocab.StatusUnderAcquisition
}

// Transition applies one answer to a progress record. sessionsCompleted is
// the user's completed session count before the current session.
//
// Any incorrect answer leaves the item under acquisition with interval 1;
// a correct answer on a non-acquired item acquires it at interval 1. Only
// a correct answer on an acquired item consults the difficulty: easy
// doubles the interval, difficult halves it, average keeps it.
func Transition(p vocab.Progress, correct bool, diff Difficulty, sessionsCompleted int) (vocab.Progress, StateTransition) {
	t := StateTransition{
		ItemID:         p.ItemID,
		From:           p.Status,
		IntervalBefore: p.Interval,
	}

	switch {
	case p.Status != vocab.StatusAcquired:
		if correct {
			p.Status = vocab.StatusAcquired
		} else {
			p.Status = vocab.StatusUnderAcquisition
		}
		p.Interval = spacedrep.MinInterval
		t.Trigger = "correct"
		if !correct {
			t.Trigger = "incorrect"
		}
		if t.From == vocab.StatusNotStarted {
			t.Trigger = "first-answer"
		}

	case !correct:
		p.Status = vocab.StatusUnderAcquisition
		p.Interval = spacedrep.MinInterval
		t.Trigger = "incorrect"

	default:
		switch diff {
		case DifficultyEasy:
			p.Interval = spacedrep.Grow(p.Interval)
		case DifficultyDifficult:
			p.Interval = spacedrep.Shrink(p.Interval)
		default:
			p.Interval = spacedrep.Clamp(p.Interval)
		}
		t.Trigger = "rated-" + string(diff)
	}

	p.LastSeenSession = sessionsCompleted + 1
	t.To = p.Status
	t.IntervalAfter = p.Interval
	return p, t
}

// Demote moves an acquired item back under acquisition with interval 1.
// Other records are returned unchanged.
func Demote(p vocab.Progress) (vocab.Progress, StateTransition) {
	t := StateTransition{
		ItemID:         p.ItemID,
		From:           p.Status,
		To:             p.Status,
		IntervalBefore: p.Interval,
		IntervalAfter:  p.Interval,
		Trigger:        "demoted",
	}
	if p.Status != vocab.StatusAcquired {
		return p, t
	}
	p.Status = vocab.StatusUnderAcquisition
	p.Interval = spacedrep.MinInterval
	t.To = p.Status
	t.IntervalAfter = p.Interval
	return p, t
}
