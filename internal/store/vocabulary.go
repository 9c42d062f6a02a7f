package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/vocabdrill/internal/vocab"
)

var itemColumns = []string{
	"item_id", "surface_form", "part_of_speech", "translation", "lesson_title",
	"mode", "course_code", "cefr_level", "domain",
}

type vocabularyRepo struct {
	s *Store
}

func (r *vocabularyRepo) Import(ctx context.Context, items []vocab.Item, contexts []vocab.ContextEntry) (ImportResult, error) {
	var res ImportResult
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		for _, it := range items {
			ins := r.s.builder().Insert(tableItems).
				Columns(itemColumns...).
				Values(it.ID, it.SurfaceForm, string(it.PartOfSpeech), it.Translation, it.LessonTitle,
					string(it.Mode), it.CourseCode, it.CEFRLevel, it.Domain).
				OnConflict(entsql.ConflictColumns("item_id"), entsql.ResolveWithNewValues())
			if _, err := exec(ctx, tx, ins); err != nil {
				return fmt.Errorf("upsert item %s: %w", it.ID, err)
			}
			res.Items++
		}

		for _, c := range contexts {
			ins := r.s.builder().Insert(tableContexts).
				Columns("item_id", "sentence", "target_word").
				Values(c.ItemID, c.Sentence, c.TargetWord).
				OnConflict(entsql.ConflictColumns("item_id", "sentence", "target_word"), entsql.DoNothing())
			n, err := exec(ctx, tx, ins)
			if err != nil {
				return fmt.Errorf("insert context for item %s: %w", c.ItemID, err)
			}
			res.Contexts += int(n)
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("import vocabulary: %w", err)
	}
	return res, nil
}

func (r *vocabularyRepo) GetItem(ctx context.Context, itemID string) (vocab.Item, error) {
	t := r.s.builder().Table(tableItems)
	sel := r.s.builder().Select(t.Columns(itemColumns...)...).
		From(t).
		Where(entsql.EQ(t.C("item_id"), itemID))

	items, err := r.queryItems(ctx, sel)
	if err != nil {
		return vocab.Item{}, fmt.Errorf("get item %s: %w", itemID, err)
	}
	if len(items) == 0 {
		return vocab.Item{}, fmt.Errorf("item %s: %w", itemID, vocab.ErrNotFound)
	}
	return items[0], nil
}

func (r *vocabularyRepo) ItemsByCourse(ctx context.Context, courseCode string) ([]vocab.Item, error) {
	t := r.s.builder().Table(tableItems)
	sel := r.s.builder().Select(t.Columns(itemColumns...)...).
		From(t).
		Where(entsql.EQ(t.C("course_code"), courseCode)).
		OrderBy(t.C("id"))

	items, err := r.queryItems(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("items for course %s: %w", courseCode, err)
	}
	return items, nil
}

func (r *vocabularyRepo) queryItems(ctx context.Context, sel *entsql.Selector) ([]vocab.Item, error) {
	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []vocab.Item
	for rows.Next() {
		var (
			it        vocab.Item
			pos, mode string
		)
		if err := rows.Scan(&it.ID, &it.SurfaceForm, &pos, &it.Translation, &it.LessonTitle,
			&mode, &it.CourseCode, &it.CEFRLevel, &it.Domain); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.PartOfSpeech = vocab.PartOfSpeech(pos)
		it.Mode = vocab.Mode(mode)
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *vocabularyRepo) ContextsByItem(ctx context.Context, itemID string) ([]vocab.ContextEntry, error) {
	t := r.s.builder().Table(tableContexts)
	sel := r.s.builder().Select(t.Columns("id", "item_id", "sentence", "target_word")...).
		From(t).
		Where(entsql.EQ(t.C("item_id"), itemID)).
		OrderBy(t.C("id"))

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("contexts for item %s: %w", itemID, err)
	}
	defer rows.Close()

	var entries []vocab.ContextEntry
	for rows.Next() {
		var e vocab.ContextEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.Sentence, &e.TargetWord); err != nil {
			return nil, fmt.Errorf("scan context: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *vocabularyRepo) CandidateDistractors(ctx context.Context, courseCode string, pos vocab.PartOfSpeech, excludeItemID string, limit int) ([]string, error) {
	t := r.s.builder().Table(tableItems)
	sel := r.s.builder().Select(t.C("surface_form")).
		Distinct().
		From(t).
		Where(entsql.And(
			entsql.EQ(t.C("course_code"), courseCode),
			entsql.EQ(t.C("part_of_speech"), string(pos)),
			entsql.NEQ(t.C("item_id"), excludeItemID),
		)).
		OrderBy(t.C("surface_form"))
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.queryStrings(ctx, sel, "distractors for item "+excludeItemID)
}

func (r *vocabularyRepo) Courses(ctx context.Context) ([]string, error) {
	t := r.s.builder().Table(tableItems)
	sel := r.s.builder().Select(t.C("course_code")).
		Distinct().
		From(t).
		OrderBy(t.C("course_code"))
	return r.queryStrings(ctx, sel, "list courses")
}

func (r *vocabularyRepo) queryStrings(ctx context.Context, sel *entsql.Selector, what string) ([]string, error) {
	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%s: %w", what, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// query builds and runs a SELECT statement.
func query(ctx context.Context, q querier, sel *entsql.Selector) (*sql.Rows, error) {
	stmt, args := sel.Query()
	if err := sel.Err(); err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return q.QueryContext(ctx, stmt, args...)
}

// queryRow builds and runs a SELECT statement expected to return one row.
// It returns vocab.ErrNotFound when there is none.
func queryRow(ctx context.Context, q querier, sel *entsql.Selector, dest ...any) error {
	stmt, args := sel.Query()
	if err := sel.Err(); err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	err := q.QueryRowContext(ctx, stmt, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return vocab.ErrNotFound
	}
	return err
}

// exec builds and runs a statement, returning the affected row count.
func exec(ctx context.Context, q querier, b entsql.Querier) (int64, error) {
	stmt, args := b.Query()
	if e, ok := b.(interface{ Err() error }); ok {
		if err := e.Err(); err != nil {
			return 0, fmt.Errorf("build statement: %w", err)
		}
	}
	res, err := q.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
