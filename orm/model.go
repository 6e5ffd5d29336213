package orm

// Model represents a database model.
// Consumers implement this interface.
type Model interface {
	TableName() string
	Schema() []Field
	Values() []any
	Pointers() []any
}

// Relator is implemented by models that hold eager-loaded relations.
// Related returns the model that receives the joined columns of relation,
// or nil when the relation is not held.
type Relator interface {
	Related(relation string) Model
}

// LookupField returns the schema field of m whose column or relation
// name equals name.
func LookupField(m Model, name string) (Field, error) {
	for _, f := range m.Schema() {
		if f.Name == name || (f.Relation != "" && f.Relation == name) {
			return f, nil
		}
	}
	return Field{}, &FieldError{Table: m.TableName(), Field: name, Err: ErrFieldNotFound}
}

// PrimaryKey returns the first field of m flagged ConstraintPK.
func PrimaryKey(m Model) (Field, bool) {
	for _, f := range m.Schema() {
		if f.Has(ConstraintPK) {
			return f, true
		}
	}
	return Field{}, false
}

// FulltextColumns returns the names of m's ConstraintFulltext columns.
func FulltextColumns(m Model) []string {
	var cols []string
	for _, f := range m.Schema() {
		if f.Has(ConstraintFulltext) {
			cols = append(cols, f.Name)
		}
	}
	return cols
}

// QualifiedColumns returns the schema columns of m as "table.column".
func QualifiedColumns(m Model) []string {
	return AliasedColumns(m.TableName(), m)
}

// AliasedColumns returns the schema columns of m as "alias.column".
func AliasedColumns(alias string, m Model) []string {
	schema := m.Schema()
	cols := make([]string, 0, len(schema))
	for _, f := range schema {
		cols = append(cols, alias+"."+f.Name)
	}
	return cols
}
