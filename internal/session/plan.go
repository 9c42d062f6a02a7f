package session

import "github.com/abhisek/vocabdrill/internal/vocab"

// Category represents the reason an item was selected for the session.
type Category string

const (
	CategoryDue    Category = "due"    // review is due
	CategoryNew    Category = "new"    // never answered
	CategoryRandom Category = "random" // filler drawn from the whole course
)

// SelectedItem is one entry of a session's ordered item list. The same
// item may appear more than once.
type SelectedItem struct {
	Item     vocab.Item
	Progress vocab.Progress
	Category Category
}

// CountChoices are the session lengths offered to the learner.
var CountChoices = []int{10, 25, 50, 75, 100}

// DefaultCount is the session length used when none is configured.
const DefaultCount = 10
