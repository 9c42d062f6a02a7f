package mastery

import (
	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// DisplayState is the state used by the UI to color an item.
type DisplayState int

const (
	DisplayNew DisplayState = iota
	DisplayLearning
	DisplayDue
	DisplayAcquired
)

// ResolveDisplayState maps a progress record and the completed session
// count into the display state used by the UI.
func ResolveDisplayState(p vocab.Progress, sessionsCompleted int) DisplayState {
	switch p.Status {
	case vocab.StatusNotStarted:
		return DisplayNew
	case vocab.StatusUnderAcquisition:
		return DisplayLearning
	case vocab.StatusAcquired:
		if spacedrep.IsDue(p, sessionsCompleted) {
			return DisplayDue
		}
		return DisplayAcquired
	default:
		return DisplayNew
	}
}
