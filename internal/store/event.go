package store

import (
	"context"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event types. Answer and session events live in separate tables, so
// per-table auto-increment IDs can't establish cross-type ordering. This
// shared counter assigns a single increasing sequence to every event
// regardless of type.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	s  *Store
}

// newSequenceCounter creates a counter and seeds its row.
func newSequenceCounter(ctx context.Context, s *Store) (*sequenceCounter, error) {
	ins := s.builder().Insert(tableGlobalSequence).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing())
	if _, err := exec(ctx, s.db, ins); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{s: s}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	upd := sc.s.builder().Update(tableGlobalSequence).
		Add("next_val", 1).
		Where(entsql.EQ("id", 1)).
		Returning("next_val")
	stmt, args := upd.Query()

	var next int64
	if err := sc.s.db.QueryRowContext(ctx, stmt, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return next - 1, nil
}
