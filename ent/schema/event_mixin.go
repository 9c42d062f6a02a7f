// Package schema declares the ent schema of the vocabdrill database.
//
// No ent client is generated from it. The tables actually migrated and
// queried are built by hand in internal/store/schema.go, and
// internal/store/schema_test.go fails when the two drift apart. Change
// both together.
package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin holds the fields shared by the append-only event tables:
// a global sequence number and a UTC timestamp.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Global sequence shared by all event tables"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("UTC time the event was recorded"),
	}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}

// LearnerMixin scopes a row to one learner in one course.
type LearnerMixin struct {
	mixin.Schema
}

func (LearnerMixin) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			NotEmpty(),
		field.String("course_code").
			NotEmpty(),
	}
}
