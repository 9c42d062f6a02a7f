package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records session lifecycle events.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "session_events"}}
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("user_id").
			NotEmpty(),
		field.String("course_code").
			NotEmpty(),
		field.String("action").
			NotEmpty().
			Comment("start, end or abandon"),
		field.Int("requested").
			Default(0),
		field.Int("questions_served").
			Default(0).
			Comment("Exercises answered (on end and abandon)"),
		field.Int("correct_answers").
			Default(0),
		field.Int("duration_secs").
			Default(0),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
