// Package importer reads vocabulary spreadsheets into items and context
// entries.
//
// Both CSV and XLSX files use the same eleven columns, in order:
//
//	item_id, item, pos, translation, lesson_title, reading_or_listening,
//	course_code, cefr_level, domain, context, target_word
//
// The first row is a header and is skipped. Rows that share an item_id
// describe one item and add one context each.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

// Column positions.
const (
	colItemID = iota
	colItem
	colPos
	colTranslation
	colLessonTitle
	colMode
	colCourseCode
	colCEFRLevel
	colDomain
	colContext
	colTargetWord

	columnCount
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// RowError describes a row that could not be used. Row is 1-based and
// counts the header.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Batch is the parsed content of a file.
type Batch struct {
	Items    []vocab.Item
	Contexts []vocab.ContextEntry

	// Rows is the number of data rows read, excluding the header.
	Rows int

	// Errors lists rejected rows. A row whose item is valid but whose
	// context is not still contributes the item.
	Errors []RowError
}

// Courses returns the distinct course codes of the batch in first-seen order.
func (b *Batch) Courses() []string {
	var out []string
	seen := make(map[string]bool)
	for _, it := range b.Items {
		if !seen[it.CourseCode] {
			seen[it.CourseCode] = true
			out = append(out, it.CourseCode)
		}
	}
	return out
}

// ParseFile reads a .csv or .xlsx file.
func ParseFile(path string) (*Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(f)
	case ".xlsx", ".xlsm":
		return ParseXLSX(f, "")
	default:
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
}

// parseRows turns raw rows, header included, into a Batch.
func parseRows(rows [][]string) *Batch {
	b := &Batch{}
	if len(rows) == 0 {
		return b
	}

	items := make(map[string]vocab.Item)
	seenContext := make(map[[3]string]bool)

	for i, row := range rows[1:] {
		rowNum := i + 2
		if blank(row) {
			continue
		}
		b.Rows++

		for len(row) < columnCount {
			row = append(row, "")
		}

		it, err := itemFromRow(row)
		if err != nil {
			b.Errors = append(b.Errors, RowError{Row: rowNum, Err: err})
			continue
		}
		if prev, ok := items[it.ID]; ok {
			if prev.CourseCode != it.CourseCode {
				b.Errors = append(b.Errors, RowError{
					Row: rowNum,
					Err: fmt.Errorf("%w: item %s already belongs to course %s", vocab.ErrInvalidRecord, it.ID, prev.CourseCode),
				})
				continue
			}
		} else {
			items[it.ID] = it
			b.Items = append(b.Items, it)
		}

		entry, err := vocab.NewContextEntry(vocab.ContextEntry{
			ItemID:     it.ID,
			Sentence:   row[colContext],
			TargetWord: row[colTargetWord],
		})
		if err != nil {
			b.Errors = append(b.Errors, RowError{Row: rowNum, Err: err})
			continue
		}
		key := [3]string{entry.ItemID, entry.Sentence, entry.TargetWord}
		if seenContext[key] {
			continue
		}
		seenContext[key] = true
		b.Contexts = append(b.Contexts, entry)
	}
	return b
}

func itemFromRow(row []string) (vocab.Item, error) {
	pos, err := vocab.ParsePartOfSpeech(row[colPos])
	if err != nil {
		return vocab.Item{}, err
	}
	mode, err := vocab.ParseMode(row[colMode])
	if err != nil {
		return vocab.Item{}, err
	}
	return vocab.NewItem(vocab.Item{
		ID:           row[colItemID],
		SurfaceForm:  row[colItem],
		PartOfSpeech: pos,
		Translation:  strings.TrimSpace(row[colTranslation]),
		LessonTitle:  strings.TrimSpace(row[colLessonTitle]),
		Mode:         mode,
		CourseCode:   row[colCourseCode],
		CEFRLevel:    strings.TrimSpace(row[colCEFRLevel]),
		Domain:       strings.TrimSpace(row[colDomain]),
	})
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Report summarizes an import.
type Report struct {
	store.ImportResult
	Rows    int
	Courses []string
	Errors  []RowError
}

// Importer loads parsed files into the vocabulary store.
type Importer struct {
	repo   store.VocabularyRepo
	logger *slog.Logger
}

// New creates an Importer.
func New(repo store.VocabularyRepo, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{repo: repo, logger: logger}
}

// ImportFile parses path and writes its items and contexts in one
// transaction. Rejected rows are reported and logged, not fatal.
func (im *Importer) ImportFile(ctx context.Context, path string) (*Report, error) {
	b, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return im.Import(ctx, b)
}

// Import writes a parsed batch.
func (im *Importer) Import(ctx context.Context, b *Batch) (*Report, error) {
	for _, re := range b.Errors {
		im.logger.Warn("skipped import row", "row", re.Row, "error", re.Err)
	}

	rep := &Report{Rows: b.Rows, Courses: b.Courses(), Errors: b.Errors}
	if len(b.Items) == 0 {
		return rep, nil
	}

	res, err := im.repo.Import(ctx, b.Items, b.Contexts)
	if err != nil {
		return nil, fmt.Errorf("import vocabulary: %w", err)
	}
	rep.ImportResult = res

	im.logger.Info("vocabulary imported",
		"rows", b.Rows,
		"items", res.Items,
		"contexts", res.Contexts,
		"courses", strings.Join(rep.Courses, ","),
		"rejected", len(b.Errors),
	)
	return rep, nil
}
