package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableItems           = "items"
	tableContexts        = "contexts"
	tableUserProgress    = "user_progress"
	tableSessionCounters = "session_counters"
	tableAnswerEvents    = "answer_events"
	tableSessionEvents   = "session_events"
	tableGlobalSequence  = "global_sequence"
)

var (
	// ItemsColumns holds the columns for the "items" table.
	ItemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "item_id", Type: field.TypeString, Unique: true},
		{Name: "surface_form", Type: field.TypeString},
		{Name: "part_of_speech", Type: field.TypeString},
		{Name: "translation", Type: field.TypeString, Default: ""},
		{Name: "lesson_title", Type: field.TypeString, Default: ""},
		{Name: "mode", Type: field.TypeString, Default: "reading"},
		{Name: "course_code", Type: field.TypeString},
		{Name: "cefr_level", Type: field.TypeString, Default: ""},
		{Name: "domain", Type: field.TypeString, Default: ""},
	}
	// ItemsTable holds the schema information for the "items" table.
	ItemsTable = &schema.Table{
		Name:       tableItems,
		Columns:    ItemsColumns,
		PrimaryKey: []*schema.Column{ItemsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "item_course_code_part_of_speech", Columns: []*schema.Column{ItemsColumns[7], ItemsColumns[3]}},
		},
	}

	// ContextsColumns holds the columns for the "contexts" table.
	ContextsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "item_id", Type: field.TypeString},
		{Name: "sentence", Type: field.TypeString, Size: 2147483647},
		{Name: "target_word", Type: field.TypeString},
	}
	// ContextsTable holds the schema information for the "contexts" table.
	ContextsTable = &schema.Table{
		Name:       tableContexts,
		Columns:    ContextsColumns,
		PrimaryKey: []*schema.Column{ContextsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "contexts_items_contexts",
				Columns:    []*schema.Column{ContextsColumns[1]},
				RefColumns: []*schema.Column{ItemsColumns[1]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "context_item_id_sentence_target_word", Unique: true, Columns: []*schema.Column{ContextsColumns[1], ContextsColumns[2], ContextsColumns[3]}},
		},
	}

	// UserProgressColumns holds the columns for the "user_progress" table.
	UserProgressColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "item_id", Type: field.TypeString},
		{Name: "course_code", Type: field.TypeString},
		{Name: "status", Type: field.TypeString},
		{Name: "interval_sessions", Type: field.TypeInt, Default: 0},
		{Name: "last_seen_session", Type: field.TypeInt, Default: 0},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// UserProgressTable holds the schema information for the "user_progress" table.
	UserProgressTable = &schema.Table{
		Name:       tableUserProgress,
		Columns:    UserProgressColumns,
		PrimaryKey: []*schema.Column{UserProgressColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "user_progress_items_progress",
				Columns:    []*schema.Column{UserProgressColumns[2]},
				RefColumns: []*schema.Column{ItemsColumns[1]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "userprogress_user_id_item_id", Unique: true, Columns: []*schema.Column{UserProgressColumns[1], UserProgressColumns[2]}},
			{Name: "userprogress_user_id_course_code", Columns: []*schema.Column{UserProgressColumns[1], UserProgressColumns[3]}},
		},
	}

	// SessionCountersColumns holds the columns for the "session_counters" table.
	SessionCountersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "course_code", Type: field.TypeString},
		{Name: "sessions_completed", Type: field.TypeInt, Default: 0},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// SessionCountersTable holds the schema information for the "session_counters" table.
	SessionCountersTable = &schema.Table{
		Name:       tableSessionCounters,
		Columns:    SessionCountersColumns,
		PrimaryKey: []*schema.Column{SessionCountersColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessioncounter_user_id_course_code", Unique: true, Columns: []*schema.Column{SessionCountersColumns[1], SessionCountersColumns[2]}},
		},
	}

	// AnswerEventsColumns holds the columns for the "answer_events" table.
	AnswerEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "course_code", Type: field.TypeString},
		{Name: "item_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "prompt", Type: field.TypeString, Size: 2147483647},
		{Name: "correct_answer", Type: field.TypeString},
		{Name: "learner_answer", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "difficulty", Type: field.TypeString, Default: ""},
		{Name: "from_status", Type: field.TypeString, Default: ""},
		{Name: "to_status", Type: field.TypeString, Default: ""},
		{Name: "interval_before", Type: field.TypeInt, Default: 0},
		{Name: "interval_after", Type: field.TypeInt, Default: 0},
		{Name: "time_ms", Type: field.TypeInt, Default: 0},
	}
	// AnswerEventsTable holds the schema information for the "answer_events" table.
	AnswerEventsTable = &schema.Table{
		Name:       tableAnswerEvents,
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{AnswerEventsColumns[3]}},
			{Name: "answerevent_user_id_course_code", Columns: []*schema.Column{AnswerEventsColumns[4], AnswerEventsColumns[5]}},
			{Name: "answerevent_timestamp", Columns: []*schema.Column{AnswerEventsColumns[2]}},
		},
	}

	// SessionEventsColumns holds the columns for the "session_events" table.
	SessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "course_code", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "requested", Type: field.TypeInt, Default: 0},
		{Name: "questions_served", Type: field.TypeInt, Default: 0},
		{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	}
	// SessionEventsTable holds the schema information for the "session_events" table.
	SessionEventsTable = &schema.Table{
		Name:       tableSessionEvents,
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{SessionEventsColumns[3]}},
			{Name: "sessionevent_action", Columns: []*schema.Column{SessionEventsColumns[6]}},
		},
	}

	// GlobalSequenceColumns holds the columns for the "global_sequence" table.
	GlobalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	// GlobalSequenceTable holds the single-row event sequence counter.
	GlobalSequenceTable = &schema.Table{
		Name:       tableGlobalSequence,
		Columns:    GlobalSequenceColumns,
		PrimaryKey: []*schema.Column{GlobalSequenceColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ItemsTable,
		ContextsTable,
		UserProgressTable,
		SessionCountersTable,
		AnswerEventsTable,
		SessionEventsTable,
		GlobalSequenceTable,
	}
)

func init() {
	ContextsTable.ForeignKeys[0].RefTable = ItemsTable
	UserProgressTable.ForeignKeys[0].RefTable = ItemsTable
}
