package main

import (
	"slices"
	"strings"

	"github.com/tinywasm/ftsearch/internal/config"
	"github.com/tinywasm/ftsearch/orm"
)

// row is an orm.Model whose schema comes from configuration.
// Values are scanned into untyped slots.
type row struct {
	table   string
	schema  []orm.Field
	vals    []any
	related map[string]*row
}

func (r *row) TableName() string   { return r.table }
func (r *row) Schema() []orm.Field { return r.schema }
func (r *row) Values() []any       { return r.vals }

func (r *row) Pointers() []any {
	ptrs := make([]any, len(r.vals))
	for i := range r.vals {
		ptrs[i] = &r.vals[i]
	}
	return ptrs
}

// Related implements orm.Relator so eager-loaded columns are kept.
func (r *row) Related(relation string) orm.Model {
	if rel, ok := r.related[relation]; ok {
		return rel
	}
	return nil
}

// schema builds the orm fields of a configured model.
func schema(mc config.ModelConfig) []orm.Field {
	fields := make([]orm.Field, 0, len(mc.Columns))
	index := make(map[string]int)
	for _, col := range mc.Columns {
		f := orm.Field{Name: col, Type: orm.TypeText}
		if col == mc.PrimaryKey || (mc.PrimaryKey == "" && col == "id") {
			f.Constraints |= orm.ConstraintPK
		}
		if slices.Contains(mc.Fulltext, col) {
			f.Constraints |= orm.ConstraintFulltext
		}
		index[col] = len(fields)
		fields = append(fields, f)
	}
	for _, rel := range mc.Relations {
		i, ok := index[rel.Column]
		if !ok {
			i = len(fields)
			index[rel.Column] = i
			fields = append(fields, orm.Field{Name: rel.Column, Type: orm.TypeInt64})
		}
		fields[i].Ref = rel.Ref
		fields[i].RefColumn = rel.RefColumn
		fields[i].Relation = relationName(rel)
	}
	return fields
}

// relationName defaults to the FK column without its _id suffix.
func relationName(rel config.RelationConfig) string {
	if rel.Name != "" {
		return rel.Name
	}
	return strings.TrimSuffix(rel.Column, "_id")
}

// models turns the configured tables into prototype rows keyed by table.
// Each row holds a related row for every relation whose table is configured.
type models map[string]config.ModelConfig

func newModels(cfg config.Config) models {
	ms := make(models, len(cfg.Models))
	for _, mc := range cfg.Models {
		ms[mc.Table] = mc
	}
	return ms
}

// newRow creates an empty row for table with one level of related rows.
func (ms models) newRow(table string) *row {
	r := ms.flatRow(table)
	mc := ms[table]
	for _, rel := range mc.Relations {
		if _, ok := ms[rel.Ref]; ok {
			if r.related == nil {
				r.related = make(map[string]*row)
			}
			r.related[relationName(rel)] = ms.flatRow(rel.Ref)
		}
	}
	return r
}

func (ms models) flatRow(table string) *row {
	s := schema(ms[table])
	return &row{table: table, schema: s, vals: make([]any, len(s))}
}

// all returns one prototype per configured table for registry use.
func (ms models) all() []orm.Model {
	out := make([]orm.Model, 0, len(ms))
	for table := range ms {
		out = append(out, ms.flatRow(table))
	}
	return out
}
