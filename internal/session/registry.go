package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/abhisek/vocabdrill/internal/exercise"
)

// DefaultIdleTimeout is how long a session may go without a call before
// the sweeper abandons it.
const DefaultIdleTimeout = 30 * time.Minute

type entry struct {
	mu       sync.Mutex
	state    *State
	lastUsed time.Time
}

// Registry gives a host delivery layer handle-keyed access to live
// sessions. Calls on the same handle are serialized; calls on different
// handles run concurrently.
type Registry struct {
	orch        *Orchestrator
	idleTimeout time.Duration
	logger      *slog.Logger
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry

	scheduler *gocron.Scheduler
}

// NewRegistry creates a Registry. A non-positive idleTimeout uses
// DefaultIdleTimeout.
func NewRegistry(orch *Orchestrator, idleTimeout time.Duration, logger *slog.Logger) *Registry {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		orch:        orch,
		idleTimeout: idleTimeout,
		logger:      logger,
		now:         time.Now,
		sessions:    make(map[string]*entry),
	}
}

// Start begins a session and returns its handle.
func (r *Registry) Start(ctx context.Context, userID, courseCode string, count int) (string, error) {
	st, err := r.orch.Start(ctx, userID, courseCode, count)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	r.sessions[st.ID] = &entry{state: st, lastUsed: r.now()}
	r.mu.Unlock()
	return st.ID, nil
}

// CurrentPrompt returns the exercise for the session's current item.
func (r *Registry) CurrentPrompt(ctx context.Context, handle string) (*exercise.Exercise, error) {
	var ex *exercise.Exercise
	err := r.with(handle, func(st *State) (err error) {
		ex, err = r.orch.CurrentPrompt(ctx, st)
		return err
	})
	return ex, err
}

// SubmitAnswer grades an answer to the current exercise.
func (r *Registry) SubmitAnswer(ctx context.Context, handle, answer string) (*Feedback, error) {
	var fb *Feedback
	err := r.with(handle, func(st *State) (err error) {
		fb, err = r.orch.SubmitAnswer(ctx, st, answer)
		return err
	})
	return fb, err
}

// SubmitDifficulty rates a correct answer and advances the session.
func (r *Registry) SubmitDifficulty(ctx context.Context, handle, label string) (*Feedback, error) {
	var fb *Feedback
	err := r.with(handle, func(st *State) (err error) {
		fb, err = r.orch.SubmitDifficulty(ctx, st, label)
		return err
	})
	return fb, err
}

// Advance moves past an incorrect answer.
func (r *Registry) Advance(ctx context.Context, handle string) (*Feedback, error) {
	var fb *Feedback
	err := r.with(handle, func(st *State) (err error) {
		fb, err = r.orch.Advance(ctx, st)
		return err
	})
	return fb, err
}

// Skip moves past the current item without grading it.
func (r *Registry) Skip(ctx context.Context, handle string) error {
	return r.with(handle, func(st *State) error {
		return r.orch.Skip(ctx, st)
	})
}

// Finalize retries completing a session stuck in the finalizing phase.
func (r *Registry) Finalize(ctx context.Context, handle string) error {
	return r.with(handle, func(st *State) error {
		return r.orch.Finalize(ctx, st)
	})
}

// IsComplete reports whether the session completed. A completed session
// is removed from the registry once its summary has been returned.
func (r *Registry) IsComplete(handle string) (bool, *Summary, error) {
	var (
		done    bool
		summary *Summary
	)
	err := r.with(handle, func(st *State) error {
		done, summary = r.orch.IsComplete(st)
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	if done {
		r.remove(handle)
	}
	return done, summary, nil
}

// Abandon drops a session and removes it from the registry.
func (r *Registry) Abandon(ctx context.Context, handle string) (*Summary, error) {
	var summary *Summary
	err := r.with(handle, func(st *State) (err error) {
		summary, err = r.orch.Abandon(ctx, st)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.remove(handle)
	return summary, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep abandons every session idle for longer than the idle timeout and
// returns how many were removed.
func (r *Registry) Sweep(ctx context.Context) int {
	cutoff := r.now().Add(-r.idleTimeout)

	r.mu.Lock()
	var stale []string
	for handle, e := range r.sessions {
		if e.mu.TryLock() {
			if e.lastUsed.Before(cutoff) {
				stale = append(stale, handle)
			}
			e.mu.Unlock()
		}
	}
	r.mu.Unlock()

	removed := 0
	for _, handle := range stale {
		e := r.get(handle)
		if e == nil {
			continue
		}
		e.mu.Lock()
		if e.lastUsed.Before(cutoff) {
			if e.state.Phase != PhaseCompleted && e.state.Phase != PhaseAbandoned {
				if _, err := r.orch.Abandon(ctx, e.state); err != nil {
					r.logger.Warn("failed to abandon idle session", "session_id", handle, "error", err)
				}
			}
			r.remove(handle)
			removed++
		}
		e.mu.Unlock()
	}

	if removed > 0 {
		r.logger.Info("expired idle sessions", "count", removed, "idle_timeout", r.idleTimeout)
	}
	return removed
}

// StartSweeper runs Sweep every minute in the background until Stop.
func (r *Registry) StartSweeper() error {
	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Every(1).Minute().Do(func() {
		r.Sweep(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule session sweeper: %w", err)
	}
	s.StartAsync()
	r.scheduler = s
	return nil
}

// Stop halts the background sweeper, if running.
func (r *Registry) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
		r.scheduler = nil
	}
}

func (r *Registry) get(handle string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[handle]
}

func (r *Registry) remove(handle string) {
	r.mu.Lock()
	delete(r.sessions, handle)
	r.mu.Unlock()
}

func (r *Registry) with(handle string, fn func(*State) error) error {
	e := r.get(handle)
	if e == nil {
		return fmt.Errorf("session %s: %w", handle, ErrUnknownSession)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	// The sweeper may have removed the entry while we waited.
	if r.get(handle) != e {
		return fmt.Errorf("session %s: %w", handle, ErrUnknownSession)
	}
	e.lastUsed = r.now()
	return fn(e.state)
}
