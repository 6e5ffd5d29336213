package orm

import (
	"strconv"
	"sync"
)

// Registry maps table names to prototype models.
// Relation lookups use it to reach the metadata of a related table.
type Registry struct {
	mu     sync.RWMutex
	models map[string]Model
}

// NewRegistry creates a Registry holding models.
func NewRegistry(models ...Model) *Registry {
	r := &Registry{models: make(map[string]Model)}
	r.Register(models...)
	return r
}

// Register adds models keyed by their table name, replacing earlier entries.
func (r *Registry) Register(models ...Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range models {
		r.models[m.TableName()] = m
	}
}

// Model returns the prototype registered for table.
func (r *Registry) Model(table string) (Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[table]
	return m, ok
}

// Related resolves relation on m to its FK field and the related model.
func (r *Registry) Related(m Model, relation string) (Field, Model, error) {
	f, err := LookupField(m, relation)
	if err != nil {
		return Field{}, nil, err
	}
	if f.Ref == "" {
		return Field{}, nil, &FieldError{Table: m.TableName(), Field: relation, Err: ErrNotRelation}
	}
	rm, ok := r.Model(f.Ref)
	if !ok {
		return Field{}, nil, &FieldError{Table: f.Ref, Field: relation, Err: ErrUnknownModel}
	}
	return f, rm, nil
}

// Join builds the inner join that follows relation from m.
func (r *Registry) Join(m Model, relation string) (Join, Model, error) {
	f, rm, err := r.Related(m, relation)
	if err != nil {
		return Join{}, nil, err
	}
	refCol := f.RefColumn
	if refCol == "" {
		pk, ok := PrimaryKey(rm)
		if !ok {
			return Join{}, nil, &FieldError{Table: rm.TableName(), Field: "primary key", Err: ErrFieldNotFound}
		}
		refCol = pk.Name
	}
	name := f.Relation
	if name == "" {
		name = relation
	}
	return Join{Relation: name, Table: rm.TableName(), Alias: rm.TableName(), Column: f.Name, RefColumn: refCol}, rm, nil
}

// Joins resolves relations in order and gives each join an alias unique
// within the statement: the table name while it is free, then
// table_2, table_3 and so on. A relation back to m's own table, or a
// second relation to the same table, therefore gets a distinct alias.
// Aliases depend only on the relations before them, so appending
// relations never renames earlier joins.
func (r *Registry) Joins(m Model, relations []string) ([]Join, []Model, error) {
	used := map[string]bool{m.TableName(): true}
	joins := make([]Join, 0, len(relations))
	related := make([]Model, 0, len(relations))
	for _, rel := range relations {
		j, rm, err := r.Join(m, rel)
		if err != nil {
			return nil, nil, err
		}
		for n := 2; used[j.Alias]; n++ {
			j.Alias = j.Table + "_" + strconv.Itoa(n)
		}
		used[j.Alias] = true
		joins = append(joins, j)
		related = append(related, rm)
	}
	return joins, related, nil
}
