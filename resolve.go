package ftsearch

import (
	"fmt"
	"strings"

	"github.com/tinywasm/ftsearch/orm"
)

// Separator splits a relation name from the related model's field.
const Separator = "."

// Column is a physical column a search field resolved to.
type Column struct {
	Table string
	// Alias qualifies the column in SQL: the join alias for related
	// columns, the table name for local ones.
	Alias string
	Name  string
}

// Resolution is the outcome of resolving a list of search fields.
type Resolution struct {
	// Columns are deduplicated and kept in first-seen order.
	Columns []Column
	// Related lists the relations crossed by any field, for eager loading.
	// Joining them in this order reproduces the aliases in Columns.
	Related []string
}

// Quoted renders every column as quote(alias).quote(column).
func (r Resolution) Quoted(quote func(string) string) []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = quote(c.Alias) + "." + quote(c.Name)
	}
	return out
}

// Resolve maps logical field names on m to physical columns.
// "field" is looked up on m; "relation.field" is looked up on the model
// registered in db for the relation's Ref table and qualified with the
// alias orm.Registry.Joins gives that relation. Lookup failures are
// returned as *orm.FieldError.
func Resolve(db *orm.DB, m orm.Model, fields []string) (Resolution, error) {
	if len(fields) == 0 {
		return Resolution{}, ErrNoFields
	}

	type resolved struct {
		col      Column
		relation string
	}
	var res Resolution
	found := make([]resolved, 0, len(fields))
	for _, field := range fields {
		col, relation, err := resolveField(db.Models(), m, field)
		if err != nil {
			return Resolution{}, err
		}
		found = append(found, resolved{col, relation})
		if relation != "" && !contains(res.Related, relation) {
			res.Related = append(res.Related, relation)
		}
	}

	joins, _, err := db.Models().Joins(m, res.Related)
	if err != nil {
		return Resolution{}, err
	}
	aliases := make(map[string]string, len(joins))
	for _, j := range joins {
		aliases[j.Relation] = j.Name()
	}

	seen := make(map[Column]bool)
	for _, r := range found {
		col := r.col
		col.Alias = col.Table
		if r.relation != "" {
			col.Alias = aliases[r.relation]
		}
		if !seen[col] {
			seen[col] = true
			res.Columns = append(res.Columns, col)
		}
	}
	return res, nil
}

func resolveField(reg *orm.Registry, m orm.Model, field string) (Column, string, error) {
	parts := strings.Split(field, Separator)
	switch len(parts) {
	case 1:
		f, err := orm.LookupField(m, field)
		if err != nil {
			return Column{}, "", err
		}
		return Column{Table: m.TableName(), Name: f.Name}, "", nil
	case 2:
		fk, rm, err := reg.Related(m, parts[0])
		if err != nil {
			return Column{}, "", err
		}
		f, err := orm.LookupField(rm, parts[1])
		if err != nil {
			return Column{}, "", err
		}
		relation := fk.Relation
		if relation == "" {
			relation = parts[0]
		}
		return Column{Table: rm.TableName(), Name: f.Name}, relation, nil
	}
	return Column{}, "", fmt.Errorf("%w: %s", ErrPathDepth, field)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
