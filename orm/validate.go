package orm

import "github.com/tinywasm/fmt"

// validate checks m before action is compiled. Writes also need one
// value per schema field.
func validate(action Action, m Model) error {
	if m.TableName() == "" {
		return ErrEmptyTable
	}

	schema := m.Schema()
	for _, f := range schema {
		if f.Name == "" {
			return fmt.Err(ErrValidation, "empty column name in", m.TableName())
		}
		// FULLTEXT indexes only cover character columns.
		if f.Has(ConstraintFulltext) && f.Type != TypeText {
			return fmt.Err(ErrValidation, "fulltext column", m.TableName()+"."+f.Name, "is not text")
		}
	}

	switch action {
	case ActionCreate, ActionUpdate:
		if len(schema) != len(m.Values()) {
			return fmt.Err(ErrValidation, "schema and values length mismatch")
		}
	}
	return nil
}
