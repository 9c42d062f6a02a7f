package spacedrep

import "github.com/abhisek/vocabdrill/internal/vocab"

// Intervals are counted in completed sessions, not days. An item with
// interval n answered in session s is due again from session s+n-1 on.
const (
	MinInterval = vocab.MinInterval
	MaxInterval = vocab.MaxInterval
)

// Clamp bounds an interval to [MinInterval, MaxInterval].
func Clamp(interval int) int {
	switch {
	case interval < MinInterval:
		return MinInterval
	case interval > MaxInterval:
		return MaxInterval
	}
	return interval
}

// Grow doubles the interval after an easy review.
func Grow(interval int) int {
	if interval >= MaxInterval/2 {
		return MaxInterval
	}
	return Clamp(interval * 2)
}

// Shrink halves the interval after a difficult review, rounding down.
func Shrink(interval int) int {
	return Clamp(interval / 2)
}
