package theme

import (
	"image/color"

	"github.com/abhisek/vocabdrill/internal/vocab"
)

// StatusColor returns the color used for an item status.
func StatusColor(s vocab.Status) color.Color {
	switch s {
	case vocab.StatusUnderAcquisition:
		return UnderAcquisition
	case vocab.StatusAcquired:
		return Acquired
	default:
		return NotStarted
	}
}
