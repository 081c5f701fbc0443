package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/pathwise/ent/schema"
)

// schemas lists every persisted entity. Tables are derived from the ent
// schema definitions at startup, so there is no generated client to keep
// in sync.
var schemas = []ent.Interface{
	schema.RoadmapLevel{},
	schema.Enrollment{},
	schema.UserProgress{},
	schema.LLMRequestEvent{},
}

// Table names, matching the entsql annotations in ent/schema.
const (
	levelsTable      = "roadmap_levels"
	enrollmentsTable = "career_history"
	progressTable    = "user_progress"
	llmEventsTable   = "llm_request_events"
)

func migrate(ctx context.Context, drv dialect.Driver) error {
	tables, err := buildTables(schemas...)
	if err != nil {
		return err
	}
	m, err := entschema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, tables...)
}

// buildTables converts ent schema definitions into migration tables.
// Schemas without an explicit "id" field get an auto-increment integer key.
func buildTables(defs ...ent.Interface) ([]*entschema.Table, error) {
	var (
		tables []*entschema.Table
		byType = make(map[string]*entschema.Table, len(defs))
	)
	for _, def := range defs {
		t, err := buildTable(def)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
		byType[typeName(def)] = t
	}

	// Foreign keys need every table to exist first.
	for _, def := range defs {
		t := byType[typeName(def)]
		for _, e := range def.Edges() {
			d := e.Descriptor()
			if !d.Inverse || d.Field == "" {
				continue
			}
			ref, ok := byType[d.Type]
			if !ok {
				return nil, fmt.Errorf("%s: edge %q references unknown schema %q", t.Name, d.Name, d.Type)
			}
			col, ok := t.Column(d.Field)
			if !ok {
				return nil, fmt.Errorf("%s: edge %q field %q is not declared", t.Name, d.Name, d.Field)
			}
			t.AddForeignKey(&entschema.ForeignKey{
				Symbol:     fmt.Sprintf("%s_%s_%s", t.Name, ref.Name, d.RefName),
				Columns:    []*entschema.Column{col},
				RefTable:   ref,
				RefColumns: ref.PrimaryKey,
				OnDelete:   entschema.NoAction,
			})
		}
	}
	return tables, nil
}

func buildTable(def ent.Interface) (*entschema.Table, error) {
	t := entschema.NewTable(tableName(def))

	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range def.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, def.Fields()...)
	indexes = append(indexes, def.Indexes()...)

	hasID := false
	for _, f := range fields {
		if f.Descriptor().Name == "id" {
			hasID = true
			break
		}
	}
	if !hasID {
		t.AddPrimary(&entschema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	}

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.Name, d.Name, d.Err)
		}
		col := &entschema.Column{
			Name:     columnName(d),
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional,
			Default:  staticDefault(d.Default),
		}
		if col.Name == "id" {
			t.AddPrimary(col)
			continue
		}
		t.AddColumn(col)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		name := d.StorageKey
		if name == "" {
			name = t.Name + "_" + strings.Join(d.Fields, "_")
		}
		t.AddIndex(name, d.Unique, d.Fields)
	}
	return t, nil
}

// tableName returns the entsql annotation table, falling back to the
// lower-cased type name.
func tableName(def ent.Interface) string {
	for _, a := range def.Annotations() {
		switch a := a.(type) {
		case entsql.Annotation:
			if a.Table != "" {
				return a.Table
			}
		case *entsql.Annotation:
			if a != nil && a.Table != "" {
				return a.Table
			}
		}
	}
	return strings.ToLower(typeName(def))
}

func typeName(def ent.Interface) string {
	return indirect(reflect.TypeOf(def)).Name()
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func columnName(d *field.Descriptor) string {
	if d.StorageKey != "" {
		return d.StorageKey
	}
	return d.Name
}

// staticDefault keeps literal defaults. Function defaults such as time.Now
// are applied by the repositories at insert time.
func staticDefault(v any) any {
	switch v.(type) {
	case string, bool, int, int64, float64:
		return v
	}
	return nil
}

// validate runs the ent field validators declared on def against values
// keyed by field name. Fields missing from values are skipped.
func validate(def ent.Interface, values map[string]any) error {
	for _, f := range def.Fields() {
		d := f.Descriptor()
		v, ok := values[d.Name]
		if !ok {
			continue
		}
		for _, fn := range d.Validators {
			var err error
			switch fn := fn.(type) {
			case func(string) error:
				s, ok := v.(string)
				if !ok {
					continue
				}
				err = fn(s)
			case func(int) error:
				n, ok := v.(int)
				if !ok {
					continue
				}
				err = fn(n)
			}
			if err != nil {
				return fmt.Errorf("%s: validator failed for field %q: %w", typeName(def), d.Name, err)
			}
		}
	}
	return nil
}
