package schema

import (
	"encoding/json"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// RoadmapLevel is one generated level of a career path catalog. Rows are
// written once per career path and never updated.
type RoadmapLevel struct {
	ent.Schema
}

func (RoadmapLevel) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "roadmap_levels"},
	}
}

func (RoadmapLevel) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable(),
		field.String("career_path").
			NotEmpty().
			Immutable(),
		field.Int("level").
			Positive().
			Immutable().
			Comment("1-based position within the career path"),
		field.String("title").
			Immutable(),
		field.Text("description").
			Immutable(),
		field.JSON("learning_content", json.RawMessage{}).
			Immutable().
			Comment("Topics and resources as JSON"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (RoadmapLevel) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("progress", UserProgress.Type),
	}
}

func (RoadmapLevel) Indexes() []ent.Index {
	return []ent.Index{
		// One catalog per career path: a concurrent second generation
		// fails here instead of duplicating levels.
		index.Fields("career_path", "level").Unique(),
	}
}
