package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// UserProgress is a learner's mastery record for one item.
type UserProgress struct {
	ent.Schema
}

func (UserProgress) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "user_progress"}}
}

func (UserProgress) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			NotEmpty(),
		field.String("item_id").
			NotEmpty(),
		field.String("course_code").
			NotEmpty(),
		field.String("status").
			Comment("not_started, under_acquisition or acquired"),
		field.Int("interval_sessions").
			Default(0).
			Comment("Sessions until the item is due; 0 while not started"),
		field.Int("last_seen_session").
			Default(0),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (UserProgress) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "item_id").Unique(),
		index.Fields("user_id", "course_code"),
	}
}

// SessionCounter counts the completed sessions of a learner in a course.
type SessionCounter struct {
	ent.Schema
}

func (SessionCounter) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "session_counters"}}
}

func (SessionCounter) Mixin() []ent.Mixin {
	return []ent.Mixin{LearnerMixin{}}
}

func (SessionCounter) Fields() []ent.Field {
	return []ent.Field{
		field.Int("sessions_completed").
			Default(0).
			NonNegative(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (SessionCounter) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "course_code").Unique(),
	}
}
