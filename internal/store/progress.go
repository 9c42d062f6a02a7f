package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/vocabdrill/internal/vocab"
)

var progressColumns = []string{
	"user_id", "item_id", "course_code", "status", "interval_sessions", "last_seen_session",
}

type progressRepo struct {
	s *Store
}

func (r *progressRepo) ItemsWithProgress(ctx context.Context, userID, courseCode string) ([]vocab.ItemProgress, error) {
	b := r.s.builder()
	items := b.Table(tableItems)
	prog := b.Table(tableUserProgress).As("p")

	sel := b.Select(append(
		items.Columns(itemColumns...),
		prog.C("status"), prog.C("interval_sessions"), prog.C("last_seen_session"),
	)...).
		From(items).
		LeftJoin(prog).
		OnP(entsql.And(
			entsql.ColumnsEQ(prog.C("item_id"), items.C("item_id")),
			entsql.EQ(prog.C("user_id"), userID),
		)).
		Where(entsql.EQ(items.C("course_code"), courseCode)).
		OrderBy(items.C("id"))

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("items with progress for %s/%s: %w", userID, courseCode, err)
	}
	defer rows.Close()

	var out []vocab.ItemProgress
	for rows.Next() {
		var (
			it                 vocab.Item
			pos, mode          string
			status             sql.NullString
			interval, lastSeen sql.NullInt64
		)
		if err := rows.Scan(&it.ID, &it.SurfaceForm, &pos, &it.Translation, &it.LessonTitle,
			&mode, &it.CourseCode, &it.CEFRLevel, &it.Domain,
			&status, &interval, &lastSeen); err != nil {
			return nil, fmt.Errorf("scan item progress: %w", err)
		}
		it.PartOfSpeech = vocab.PartOfSpeech(pos)
		it.Mode = vocab.Mode(mode)

		p := vocab.NewProgress(userID, it.ID, it.CourseCode)
		if status.Valid {
			p.Status = vocab.Status(status.String)
			p.Interval = int(interval.Int64)
			p.LastSeenSession = int(lastSeen.Int64)
		}
		out = append(out, vocab.ItemProgress{Item: it, Progress: p})
	}
	return out, rows.Err()
}

func (r *progressRepo) GetProgress(ctx context.Context, userID, itemID string) (vocab.Progress, error) {
	p, err := r.getProgress(ctx, r.s.db, userID, itemID, false)
	if err != nil {
		return vocab.Progress{}, fmt.Errorf("get progress %s/%s: %w", userID, itemID, err)
	}
	return p, nil
}

func (r *progressRepo) getProgress(ctx context.Context, q querier, userID, itemID string, lock bool) (vocab.Progress, error) {
	t := r.s.builder().Table(tableUserProgress)
	sel := r.s.builder().Select(t.Columns(progressColumns...)...).
		From(t).
		Where(entsql.And(
			entsql.EQ(t.C("user_id"), userID),
			entsql.EQ(t.C("item_id"), itemID),
		))
	// SQLite has no row locks; its transactions start with BEGIN IMMEDIATE.
	if lock && r.s.dialect == dialect.Postgres {
		sel.ForUpdate()
	}

	var (
		p      vocab.Progress
		status string
	)
	if err := queryRow(ctx, q, sel, &p.UserID, &p.ItemID, &p.CourseCode, &status, &p.Interval, &p.LastSeenSession); err != nil {
		return vocab.Progress{}, err
	}
	p.Status = vocab.Status(status)
	return p, nil
}

func (r *progressRepo) UpsertProgress(ctx context.Context, p vocab.Progress) error {
	if err := r.upsertProgress(ctx, r.s.db, p); err != nil {
		return fmt.Errorf("upsert progress %s/%s: %w", p.UserID, p.ItemID, err)
	}
	return nil
}

func (r *progressRepo) upsertProgress(ctx context.Context, q querier, p vocab.Progress) error {
	if err := p.Validate(); err != nil {
		return err
	}
	ins := r.s.builder().Insert(tableUserProgress).
		Columns(append(progressColumns, "updated_at")...).
		Values(p.UserID, p.ItemID, p.CourseCode, string(p.Status), p.Interval, p.LastSeenSession, time.Now().UTC()).
		OnConflict(entsql.ConflictColumns("user_id", "item_id"), entsql.ResolveWithNewValues())
	_, err := exec(ctx, q, ins)
	return err
}

func (r *progressRepo) UpdateProgress(ctx context.Context, userID, itemID, courseCode string, fn ProgressFunc) (vocab.Progress, error) {
	var updated vocab.Progress
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		completed, err := r.sessionCounter(ctx, tx, userID, courseCode)
		if err != nil {
			return err
		}
		current, err := r.getProgress(ctx, tx, userID, itemID, true)
		if err != nil {
			return err
		}
		next, err := fn(current, completed)
		if err != nil {
			return err
		}
		if err := r.upsertProgress(ctx, tx, next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return vocab.Progress{}, fmt.Errorf("update progress %s/%s: %w", userID, itemID, err)
	}
	return updated, nil
}

func (r *progressRepo) InitializeProgress(ctx context.Context, userID, courseCode string) (int, error) {
	var created int
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		b := r.s.builder()
		items := b.Table(tableItems)
		prog := b.Table(tableUserProgress).As("p")

		sel := b.Select(items.C("item_id")).
			From(items).
			LeftJoin(prog).
			OnP(entsql.And(
				entsql.ColumnsEQ(prog.C("item_id"), items.C("item_id")),
				entsql.EQ(prog.C("user_id"), userID),
			)).
			Where(entsql.And(
				entsql.EQ(items.C("course_code"), courseCode),
				entsql.IsNull(prog.C("id")),
			)).
			OrderBy(items.C("id"))

		rows, err := query(ctx, tx, sel)
		if err != nil {
			return err
		}
		var missing []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			missing = append(missing, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, id := range missing {
			p := vocab.NewProgress(userID, id, courseCode)
			ins := b.Insert(tableUserProgress).
				Columns(append(progressColumns, "updated_at")...).
				Values(p.UserID, p.ItemID, p.CourseCode, string(p.Status), p.Interval, p.LastSeenSession, now).
				OnConflict(entsql.ConflictColumns("user_id", "item_id"), entsql.DoNothing())
			n, err := exec(ctx, tx, ins)
			if err != nil {
				return err
			}
			created += int(n)
		}

		ins := b.Insert(tableSessionCounters).
			Columns("user_id", "course_code", "sessions_completed", "updated_at").
			Values(userID, courseCode, 0, now).
			OnConflict(entsql.ConflictColumns("user_id", "course_code"), entsql.DoNothing())
		_, err = exec(ctx, tx, ins)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("initialize progress %s/%s: %w", userID, courseCode, err)
	}
	return created, nil
}

func (r *progressRepo) SessionCounter(ctx context.Context, userID, courseCode string) (int, error) {
	n, err := r.sessionCounter(ctx, r.s.db, userID, courseCode)
	if err != nil {
		return 0, fmt.Errorf("session counter %s/%s: %w", userID, courseCode, err)
	}
	return n, nil
}

func (r *progressRepo) sessionCounter(ctx context.Context, q querier, userID, courseCode string) (int, error) {
	t := r.s.builder().Table(tableSessionCounters)
	sel := r.s.builder().Select(t.C("sessions_completed")).
		From(t).
		Where(entsql.And(
			entsql.EQ(t.C("user_id"), userID),
			entsql.EQ(t.C("course_code"), courseCode),
		))

	var n int
	err := queryRow(ctx, q, sel, &n)
	if errors.Is(err, vocab.ErrNotFound) {
		return 0, nil
	}
	return n, err
}

func (r *progressRepo) IncrementSessionCounter(ctx context.Context, userID, courseCode string) (int, error) {
	now := time.Now().UTC()
	ins := r.s.builder().Insert(tableSessionCounters).
		Columns("user_id", "course_code", "sessions_completed", "updated_at").
		Values(userID, courseCode, 1, now).
		OnConflict(
			entsql.ConflictColumns("user_id", "course_code"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Add("sessions_completed", 1)
				u.Set("updated_at", now)
			}),
		).
		Returning("sessions_completed")

	stmt, args, err := ins.QueryErr()
	if err != nil {
		return 0, fmt.Errorf("build counter upsert: %w", err)
	}
	var n int
	if err := r.s.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("increment session counter %s/%s: %w", userID, courseCode, err)
	}
	return n, nil
}
