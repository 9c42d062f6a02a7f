package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one graded answer and the mastery change it caused.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "answer_events"}}
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("user_id").
			NotEmpty(),
		field.String("course_code").
			NotEmpty(),
		field.String("item_id").
			NotEmpty(),
		field.String("kind").
			Comment("gapfill or mcq"),
		field.Text("prompt"),
		field.String("correct_answer"),
		field.String("learner_answer"),
		field.Bool("correct"),
		field.String("difficulty").
			Default("").
			Comment("Learner rating after a correct answer"),
		field.String("from_status").
			Default(""),
		field.String("to_status").
			Default(""),
		field.Int("interval_before").
			Default(0),
		field.Int("interval_after").
			Default(0),
		field.Int("time_ms").
			Default(0).
			Comment("Milliseconds to answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("user_id", "course_code"),
	}
}
