package vocab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{
			name: "valid",
			item: Item{ID: "1", SurfaceForm: "walk", PartOfSpeech: PosVerb, CourseCode: "L1"},
		},
		{
			name:    "missing id",
			item:    Item{SurfaceForm: "walk", PartOfSpeech: PosVerb, CourseCode: "L1"},
			wantErr: true,
		},
		{
			name:    "missing surface form",
			item:    Item{ID: "1", PartOfSpeech: PosVerb, CourseCode: "L1"},
			wantErr: true,
		},
		{
			name:    "missing course",
			item:    Item{ID: "1", SurfaceForm: "walk", PartOfSpeech: PosVerb},
			wantErr: true,
		},
		{
			name:    "unknown pos",
			item:    Item{ID: "1", SurfaceForm: "walk", PartOfSpeech: "adverb", CourseCode: "L1"},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			item:    Item{ID: "1", SurfaceForm: "walk", PartOfSpeech: PosVerb, CourseCode: "L1", Mode: "writing"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewItem(tt.item)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRecord))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewItem_DefaultsMode(t *testing.T) {
	it, err := NewItem(Item{ID: " 7 ", SurfaceForm: " run ", PartOfSpeech: PosVerb, CourseCode: "L1"})
	require.NoError(t, err)
	assert.Equal(t, ModeReading, it.Mode)
	assert.Equal(t, "7", it.ID)
	assert.Equal(t, "run", it.SurfaceForm)
}

func TestNewContextEntry(t *testing.T) {
	_, err := NewContextEntry(ContextEntry{ItemID: "1", Sentence: "I walk home.", TargetWord: "walk"})
	require.NoError(t, err)

	_, err = NewContextEntry(ContextEntry{ItemID: "1", Sentence: "I walk home."})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = NewContextEntry(ContextEntry{ItemID: "1", TargetWord: "walk"})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestParsePartOfSpeech(t *testing.T) {
	tests := []struct {
		in   string
		want PartOfSpeech
	}{
		{"noun", PosNoun},
		{"Verb", PosVerb},
		{" adjective ", PosOther},
		{"phrase", PosOther},
	}
	for _, tt := range tests {
		got, err := ParsePartOfSpeech(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ParsePartOfSpeech(%q)", tt.in)
	}

	_, err := ParsePartOfSpeech("")
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("Under Acquisition")
	require.NoError(t, err)
	assert.Equal(t, StatusUnderAcquisition, got)

	got, err = ParseStatus("acquired")
	require.NoError(t, err)
	assert.Equal(t, StatusAcquired, got)

	_, err = ParseStatus("mastered")
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestProgressValidate(t *testing.T) {
	assert.NoError(t, NewProgress("u", "1", "L1").Validate())
	assert.NoError(t, Progress{Status: StatusAcquired, Interval: 1024}.Validate())
	assert.Error(t, Progress{Status: StatusAcquired, Interval: 0}.Validate())
	assert.Error(t, Progress{Status: StatusUnderAcquisition, Interval: 2048}.Validate())
	assert.Error(t, Progress{Status: "rusty", Interval: 1}.Validate())
}
