package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	s *Store
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := r.s.builder().Insert(tableSessionEvents).
		Columns("sequence", "timestamp", "session_id", "user_id", "course_code", "action",
			"requested", "questions_served", "correct_answers", "duration_secs").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.UserID, data.CourseCode, data.Action,
			data.Requested, data.QuestionsServed, data.CorrectAnswers, data.DurationSecs)
	if _, err := exec(ctx, r.s.db, ins); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := r.s.builder().Insert(tableAnswerEvents).
		Columns("sequence", "timestamp", "session_id", "user_id", "course_code", "item_id",
			"kind", "prompt", "correct_answer", "learner_answer", "correct", "difficulty",
			"from_status", "to_status", "interval_before", "interval_after", "time_ms").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.UserID, data.CourseCode, data.ItemID,
			data.Kind, data.Prompt, data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.Difficulty,
			data.FromStatus, data.ToStatus, data.IntervalBefore, data.IntervalAfter, data.TimeMs)
	if _, err := exec(ctx, r.s.db, ins); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AnswerAccuracy(ctx context.Context, userID, courseCode string) (Accuracy, error) {
	var acc Accuracy
	count := func(correctOnly bool) (int, error) {
		t := r.s.builder().Table(tableAnswerEvents)
		preds := []*entsql.Predicate{
			entsql.EQ(t.C("user_id"), userID),
			entsql.EQ(t.C("course_code"), courseCode),
		}
		if correctOnly {
			preds = append(preds, entsql.EQ(t.C("correct"), true))
		}
		sel := r.s.builder().Select().From(t).Where(entsql.And(preds...)).Count()

		var n int
		err := queryRow(ctx, r.s.db, sel, &n)
		return n, err
	}

	var err error
	if acc.Total, err = count(false); err != nil {
		return Accuracy{}, fmt.Errorf("count answers: %w", err)
	}
	if acc.Correct, err = count(true); err != nil {
		return Accuracy{}, fmt.Errorf("count correct answers: %w", err)
	}
	return acc, nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, userID, courseCode string, limit int) ([]SessionRecord, error) {
	t := r.s.builder().Table(tableSessionEvents)
	sel := r.s.builder().Select(t.Columns("sequence", "timestamp", "session_id", "user_id", "course_code",
		"action", "requested", "questions_served", "correct_answers", "duration_secs")...).
		From(t).
		Where(entsql.And(
			entsql.EQ(t.C("user_id"), userID),
			entsql.EQ(t.C("course_code"), courseCode),
			entsql.NEQ(t.C("action"), "start"),
		)).
		OrderBy(entsql.Desc(t.C("sequence")))
	if limit > 0 {
		sel.Limit(limit)
	}

	rows, err := query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.UserID, &rec.CourseCode,
			&rec.Action, &rec.Requested, &rec.QuestionsServed, &rec.CorrectAnswers, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
