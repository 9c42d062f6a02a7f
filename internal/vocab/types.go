package vocab

import (
	"fmt"
	"strings"
)

// PartOfSpeech is the grammatical category of an item.
type PartOfSpeech string

const (
	PosNoun  PartOfSpeech = "noun"
	PosVerb  PartOfSpeech = "verb"
	PosOther PartOfSpeech = "other"
)

// ParsePartOfSpeech maps an imported label to a PartOfSpeech.
// Labels other than noun and verb (adjective, phrase, ...) become PosOther.
func ParsePartOfSpeech(s string) (PartOfSpeech, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "noun", "n":
		return PosNoun, nil
	case "verb", "v":
		return PosVerb, nil
	case "":
		return "", fmt.Errorf("%w: empty part of speech", ErrInvalidRecord)
	default:
		return PosOther, nil
	}
}

// Mode is the skill an item is practised for.
type Mode string

const (
	ModeReading   Mode = "reading"
	ModeListening Mode = "listening"
)

// ParseMode maps an imported label to a Mode. Empty defaults to reading.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reading", "":
		return ModeReading, nil
	case "listening":
		return ModeListening, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidRecord, s)
	}
}

// Status is an item's position in the acquisition lifecycle.
type Status string

const (
	StatusNotStarted       Status = "not_started"
	StatusUnderAcquisition Status = "under_acquisition"
	StatusAcquired         Status = "acquired"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusUnderAcquisition, StatusAcquired:
		return true
	}
	return false
}

// Label returns the human readable status.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusUnderAcquisition:
		return "Under acquisition"
	case StatusAcquired:
		return "Acquired"
	default:
		return string(s)
	}
}

// ParseStatus accepts either the stored value or the human readable label.
func ParseStatus(s string) (Status, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	st := Status(norm)
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidRecord, s)
	}
	return st, nil
}

// Item is a vocabulary word or phrase being learned.
type Item struct {
	ID           string
	SurfaceForm  string
	PartOfSpeech PartOfSpeech
	Translation  string
	LessonTitle  string
	Mode         Mode
	CourseCode   string
	CEFRLevel    string
	Domain       string
}

// NewItem validates and returns an Item.
func NewItem(it Item) (Item, error) {
	it.ID = strings.TrimSpace(it.ID)
	it.SurfaceForm = strings.TrimSpace(it.SurfaceForm)
	it.CourseCode = strings.TrimSpace(it.CourseCode)

	switch {
	case it.ID == "":
		return Item{}, fmt.Errorf("%w: item id is empty", ErrInvalidRecord)
	case it.SurfaceForm == "":
		return Item{}, fmt.Errorf("%w: item %s has no surface form", ErrInvalidRecord, it.ID)
	case it.CourseCode == "":
		return Item{}, fmt.Errorf("%w: item %s has no course code", ErrInvalidRecord, it.ID)
	}

	switch it.PartOfSpeech {
	case PosNoun, PosVerb, PosOther:
	default:
		return Item{}, fmt.Errorf("%w: item %s has unknown part of speech %q", ErrInvalidRecord, it.ID, it.PartOfSpeech)
	}

	switch it.Mode {
	case ModeReading, ModeListening:
	case "":
		it.Mode = ModeReading
	default:
		return Item{}, fmt.Errorf("%w: item %s has unknown mode %q", ErrInvalidRecord, it.ID, it.Mode)
	}
	return it, nil
}

// ContextEntry is one example sentence for an item. TargetWord is the
// inflected form of the item as it appears in Sentence.
type ContextEntry struct {
	ID         int64
	ItemID     string
	Sentence   string
	TargetWord string
}

// NewContextEntry validates and returns a ContextEntry.
func NewContextEntry(e ContextEntry) (ContextEntry, error) {
	e.ItemID = strings.TrimSpace(e.ItemID)
	e.Sentence = strings.TrimSpace(e.Sentence)
	e.TargetWord = strings.TrimSpace(e.TargetWord)

	switch {
	case e.ItemID == "":
		return ContextEntry{}, fmt.Errorf("%w: context has no item id", ErrInvalidRecord)
	case e.Sentence == "":
		return ContextEntry{}, fmt.Errorf("%w: context for item %s is empty", ErrInvalidRecord, e.ItemID)
	case e.TargetWord == "":
		return ContextEntry{}, fmt.Errorf("%w: context for item %s has no target word", ErrInvalidRecord, e.ItemID)
	}
	return e, nil
}

// Interval bounds, in sessions.
const (
	MinInterval = 1
	MaxInterval = 1024
)

// Progress is a learner's mastery record for one item.
type Progress struct {
	UserID     string
	ItemID     string
	CourseCode string
	Status     Status

	// Interval is the number of sessions until the item is due again.
	// It is 0 while the item is not started.
	Interval int

	// LastSeenSession is the session index the item was last answered in.
	LastSeenSession int
}

// NewProgress returns the initial NotStarted record for an item.
func NewProgress(userID, itemID, courseCode string) Progress {
	return Progress{
		UserID:     userID,
		ItemID:     itemID,
		CourseCode: courseCode,
		Status:     StatusNotStarted,
	}
}

// Validate checks the interval invariant.
func (p Progress) Validate() error {
	if !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidRecord, p.Status)
	}
	if p.Status != StatusNotStarted && (p.Interval < MinInterval || p.Interval > MaxInterval) {
		return fmt.Errorf("%w: interval %d out of range for %s", ErrInvalidRecord, p.Interval, p.Status)
	}
	return nil
}

// ItemProgress is an item joined with a learner's progress on it.
// Items without a stored record carry the zero NotStarted progress.
type ItemProgress struct {
	Item     Item
	Progress Progress
}
