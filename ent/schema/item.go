package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Item is a vocabulary word or phrase of a course.
type Item struct {
	ent.Schema
}

func (Item) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "items"}}
}

func (Item) Fields() []ent.Field {
	return []ent.Field{
		field.String("item_id").
			Unique().
			NotEmpty().
			Comment("Identifier from the imported spreadsheet"),
		field.String("surface_form").
			NotEmpty(),
		field.String("part_of_speech").
			Comment("noun, verb or other"),
		field.String("translation").
			Default(""),
		field.String("lesson_title").
			Default(""),
		field.String("mode").
			Default("reading").
			Comment("reading or listening"),
		field.String("course_code").
			NotEmpty(),
		field.String("cefr_level").
			Default(""),
		field.String("domain").
			Default(""),
	}
}

func (Item) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("course_code", "part_of_speech"),
	}
}

// ContextEntry is an example sentence for an item.
type ContextEntry struct {
	ent.Schema
}

func (ContextEntry) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "contexts"}}
}

func (ContextEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("item_id").
			NotEmpty(),
		field.Text("sentence").
			NotEmpty(),
		field.String("target_word").
			NotEmpty().
			Comment("Inflected form of the item as it appears in the sentence"),
	}
}

func (ContextEntry) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("item_id", "sentence", "target_word").Unique(),
	}
}
