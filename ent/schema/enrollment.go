package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Enrollment is a user's attempt at a career path.
type Enrollment struct {
	ent.Schema
}

func (Enrollment) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "career_history"},
	}
}

func (Enrollment) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable(),
		field.String("user_id").
			NotEmpty().
			Immutable(),
		field.String("career_path").
			NotEmpty().
			Immutable(),
		field.Time("started_at").
			Default(time.Now).
			Immutable(),
		field.Int("completion_percentage").
			Range(0, 100).
			Default(0),
		field.Time("completed_at").
			Optional().
			Nillable().
			Comment("Set only while completion_percentage is 100"),
	}
}

func (Enrollment) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("progress", UserProgress.Type),
	}
}

func (Enrollment) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "career_path", "started_at"),
	}
}
