package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

const header = "item_id,item,pos,translation,lesson_title,reading_or_listening,course_code,cefr_level,domain,context,target_word\n"

const sampleCSV = header +
	"1,walk,verb,caminar,Lesson 1,reading,L1,A1,daily,I walk to school.,walk\n" +
	"1,walk,verb,caminar,Lesson 1,reading,L1,A1,daily,She walks home.,walks\n" +
	"2,book,noun,libro,Lesson 1,listening,L1,A1,school,\"He reads books, every night.\",books\n" +
	"3,quickly,adverb,rápidamente,Lesson 2,,L1,A2,,Run quickly!,quickly\n"

func TestParseCSV(t *testing.T) {
	b, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 4, b.Rows)
	assert.Empty(t, b.Errors)
	require.Len(t, b.Items, 3)
	require.Len(t, b.Contexts, 4)

	walk := b.Items[0]
	assert.Equal(t, "1", walk.ID)
	assert.Equal(t, vocab.PosVerb, walk.PartOfSpeech)
	assert.Equal(t, "caminar", walk.Translation)
	assert.Equal(t, vocab.ModeReading, walk.Mode)

	assert.Equal(t, vocab.ModeListening, b.Items[1].Mode)
	assert.Equal(t, vocab.PosOther, b.Items[2].PartOfSpeech)
	assert.Equal(t, vocab.ModeReading, b.Items[2].Mode, "empty mode defaults to reading")

	assert.Equal(t, "He reads books, every night.", b.Contexts[2].Sentence)
	assert.Equal(t, []string{"L1"}, b.Courses())
}

func TestParseCSV_RejectedRows(t *testing.T) {
	input := header +
		",walk,verb,caminar,L,reading,L1,A1,d,I walk.,walk\n" + // no id
		"2,run,verb,correr,L,writing,L1,A1,d,I run.,run\n" + // bad mode
		"3,book,noun,libro,L,reading,L1,A1,d,,\n" + // item without context
		"3,book,noun,libro,L,reading,L2,A1,d,A book.,book\n" + // course clash
		",,,,,,,,,,\n" + // blank
		"4,eat,verb\n" // short row, no course

	b, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 5, b.Rows)
	require.Len(t, b.Items, 1)
	assert.Equal(t, "3", b.Items[0].ID)
	assert.Empty(t, b.Contexts)

	rows := make([]int, len(b.Errors))
	for i, e := range b.Errors {
		rows[i] = e.Row
		assert.True(t, errors.Is(e, vocab.ErrInvalidRecord), "row %d: %v", e.Row, e.Err)
	}
	assert.Equal(t, []int{2, 3, 4, 5, 7}, rows)
}

func TestParseCSV_DuplicateContextsCollapse(t *testing.T) {
	input := header +
		"1,walk,verb,caminar,L,reading,L1,A1,d,I walk.,walk\n" +
		"1,walk,verb,caminar,L,reading,L1,A1,d,I walk.,walk\n"

	b, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, b.Items, 1)
	assert.Len(t, b.Contexts, 1)
}

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestParseFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.xlsx")
	writeWorkbook(t, path, [][]any{
		{"item_id", "item", "pos", "translation", "lesson_title", "reading_or_listening", "course_code", "cefr_level", "domain", "context", "target_word"},
		{"10", "cat", "noun", "gato", "Pets", "reading", "L2", "A1", "animals", "The cats sleep.", "cats"},
		{"11", "jump", "verb", "saltar", "Pets", "reading", "L2", "A1", "animals", "Dogs jumped high.", "jumped"},
		{"12", "happy", "adjective", "", "Pets", "reading", "L2", "A1"},
	})

	b, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Rows)
	require.Len(t, b.Items, 3)
	assert.Len(t, b.Contexts, 2)
	require.Len(t, b.Errors, 1, "row without context keeps the item")
	assert.Equal(t, 4, b.Errors[0].Row)
	assert.Equal(t, "jumped", b.Contexts[1].TargetWord)
}

func TestParseFile_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	_, err := ParseFile(path)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestImporter_ImportFileIsIdempotent(t *testing.T) {
	s, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	path := filepath.Join(t.TempDir(), "vocab.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	im := New(s.VocabularyRepo(), nil)
	ctx := context.Background()

	rep, err := im.ImportFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Rows)
	assert.Equal(t, 4, rep.Contexts)
	assert.Equal(t, []string{"L1"}, rep.Courses)

	rep, err = im.ImportFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Contexts, "re-import adds no contexts")

	items, err := s.VocabularyRepo().ItemsByCourse(ctx, "L1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "walk", items[0].SurfaceForm)

	contexts, err := s.VocabularyRepo().ContextsByItem(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, contexts, 2)
}
