package session

import "time"

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID     string
	CourseCode    string
	Requested     int
	Answered      int
	Correct       int
	Skipped       int
	Accuracy      float64
	Duration      time.Duration
	Abandoned     bool
	NewlyAcquired int
	Regressed     int
	ItemResults   []ItemResult
}

// BuildSummary creates a Summary from the current session state. Item
// results follow the order items were first selected.
func BuildSummary(state *State) *Summary {
	var results []ItemResult
	seen := make(map[string]bool, len(state.Results))
	var acquired, regressed int
	for _, it := range state.Items {
		if seen[it.Item.ID] {
			continue
		}
		seen[it.Item.ID] = true
		r, ok := state.Results[it.Item.ID]
		if !ok {
			continue
		}
		if r.NewlyAcquired() {
			acquired++
		}
		if r.Regressed() {
			regressed++
		}
		results = append(results, *r)
	}

	var accuracy float64
	if state.Answered > 0 {
		accuracy = float64(state.CorrectCount) / float64(state.Answered)
	}

	end := state.EndTime
	if end.IsZero() {
		end = time.Now()
	}

	return &Summary{
		SessionID:     state.ID,
		CourseCode:    state.CourseCode,
		Requested:     state.Requested,
		Answered:      state.Answered,
		Correct:       state.CorrectCount,
		Skipped:       state.Skipped,
		Accuracy:      accuracy,
		Duration:      end.Sub(state.StartTime),
		Abandoned:     state.Phase == PhaseAbandoned,
		NewlyAcquired: acquired,
		Regressed:     regressed,
		ItemResults:   results,
	}
}
