package mastery

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// mockProgress implements ProgressUpdater over an in-memory map.
type mockProgress struct {
	records   map[string]vocab.Progress
	completed int
	err       error
}

func (m *mockProgress) UpdateProgress(_ context.Context, userID, itemID, _ string, fn store.ProgressFunc) (vocab.Progress, error) {
	if m.err != nil {
		return vocab.Progress{}, m.err
	}
	p, ok := m.records[userID+"/"+itemID]
	if !ok {
		return vocab.Progress{}, fmt.Errorf("update progress: %w", vocab.ErrNotFound)
	}
	next, err := fn(p, m.completed)
	if err != nil {
		return vocab.Progress{}, err
	}
	m.records[userID+"/"+itemID] = next
	return next, nil
}

func TestService_Process(t *testing.T) {
	repo := &mockProgress{
		records:   map[string]vocab.Progress{"u/1": vocab.NewProgress("u", "1", "L1")},
		completed: 2,
	}
	svc := NewService(repo, nil)

	tr, err := svc.Process(context.Background(), Answer{UserID: "u", ItemID: "1", CourseCode: "L1", Correct: true})
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, vocab.StatusNotStarted, tr.From)
	assert.Equal(t, vocab.StatusAcquired, tr.To)

	stored := repo.records["u/1"]
	assert.Equal(t, vocab.StatusAcquired, stored.Status)
	assert.Equal(t, 1, stored.Interval)
	assert.Equal(t, 3, stored.LastSeenSession)
}

func TestService_Process_EasyThenDifficult(t *testing.T) {
	repo := &mockProgress{records: map[string]vocab.Progress{
		"u/1": {UserID: "u", ItemID: "1", CourseCode: "L1", Status: vocab.StatusAcquired, Interval: 4, LastSeenSession: 1},
	}}
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Process(ctx, Answer{UserID: "u", ItemID: "1", CourseCode: "L1", Correct: true, Difficulty: DifficultyEasy})
	require.NoError(t, err)
	assert.Equal(t, 8, repo.records["u/1"].Interval)

	_, err = svc.Process(ctx, Answer{UserID: "u", ItemID: "1", CourseCode: "L1", Correct: true, Difficulty: DifficultyDifficult})
	require.NoError(t, err)
	assert.Equal(t, 4, repo.records["u/1"].Interval)
}

func TestService_Process_MissingRecordIsNoop(t *testing.T) {
	svc := NewService(&mockProgress{records: map[string]vocab.Progress{}}, nil)

	tr, err := svc.Process(context.Background(), Answer{UserID: "u", ItemID: "404", CourseCode: "L1", Correct: true})
	assert.NoError(t, err)
	assert.Nil(t, tr)
}

func TestService_Process_StoreError(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewService(&mockProgress{err: boom}, nil)

	_, err := svc.Process(context.Background(), Answer{UserID: "u", ItemID: "1", CourseCode: "L1"})
	assert.True(t, errors.Is(err, boom))
}

func TestService_Demote(t *testing.T) {
	repo := &mockProgress{records: map[string]vocab.Progress{
		"u/1": {UserID: "u", ItemID: "1", CourseCode: "L1", Status: vocab.StatusAcquired, Interval: 64, LastSeenSession: 9},
	}}
	svc := NewService(repo, nil)

	tr, err := svc.Demote(context.Background(), "u", "1", "L1")
	require.NoError(t, err)
	assert.True(t, tr.Regressed())
	assert.Equal(t, vocab.StatusUnderAcquisition, repo.records["u/1"].Status)
	assert.Equal(t, 1, repo.records["u/1"].Interval)

	_, err = svc.Demote(context.Background(), "u", "missing", "L1")
	assert.True(t, errors.Is(err, vocab.ErrNotFound))
}
