package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// UserProgress records a user's completion of a single level. There is at
// most one row per (user_id, level_id); writes are upserts on that key.
type UserProgress struct {
	ent.Schema
}

func (UserProgress) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "user_progress"},
	}
}

func (UserProgress) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable(),
		field.String("user_id").
			NotEmpty().
			Immutable(),
		field.String("level_id").
			Immutable(),
		field.String("enrollment_id").
			Comment("Enrollment that last completed the level"),
		field.Bool("completed").
			Default(false),
		field.Time("completed_at").
			Optional().
			Nillable(),
	}
}

func (UserProgress) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("level", RoadmapLevel.Type).
			Ref("progress").
			Field("level_id").
			Unique().
			Required().
			Immutable(),
		edge.From("enrollment", Enrollment.Type).
			Ref("progress").
			Field("enrollment_id").
			Unique().
			Required(),
	}
}

func (UserProgress) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "level_id").Unique(),
		index.Fields("enrollment_id", "completed"),
	}
}
