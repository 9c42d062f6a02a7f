package session

import (
	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// ItemResult tracks per-item performance within a single session. An
// item drawn more than once accumulates into one result.
type ItemResult struct {
	ItemID       string
	SurfaceForm  string
	Category     Category
	Attempted    int
	Correct      int
	Skipped      int
	StatusBefore vocab.Status
	StatusAfter  vocab.Status
	Interval     int
}

// Record adds an applied answer to the result.
func (r *ItemResult) Record(correct bool, tr *mastery.StateTransition) {
	r.Attempted++
	if correct {
		r.Correct++
	}
	if tr != nil {
		r.StatusAfter = tr.To
		r.Interval = tr.IntervalAfter
	}
}

// Regressed reports whether the item fell back from Acquired.
func (r *ItemResult) Regressed() bool {
	return r.StatusBefore == vocab.StatusAcquired && r.StatusAfter == vocab.StatusUnderAcquisition
}

// NewlyAcquired reports whether the item became Acquired in this session.
func (r *ItemResult) NewlyAcquired() bool {
	return r.StatusBefore != vocab.StatusAcquired && r.StatusAfter == vocab.StatusAcquired
}

func newResults(items []SelectedItem) map[string]*ItemResult {
	results := make(map[string]*ItemResult, len(items))
	for _, it := range items {
		if _, ok := results[it.Item.ID]; ok {
			continue
		}
		status := it.Progress.Status
		if status == "" {
			status = vocab.StatusNotStarted
		}
		results[it.Item.ID] = &ItemResult{
			ItemID:       it.Item.ID,
			SurfaceForm:  it.Item.SurfaceForm,
			Category:     it.Category,
			StatusBefore: status,
			StatusAfter:  status,
			Interval:     it.Progress.Interval,
		}
	}
	return results
}
