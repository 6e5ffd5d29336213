package ftsearch

import (
	"fmt"

	"github.com/tinywasm/ftsearch/orm"
)

// Searchable is implemented by models that declare their own search
// fields, e.g. through ormc's db:"fulltext" tags.
type Searchable interface {
	SearchFields() []string
}

// Manager runs full-text searches against one model.
type Manager struct {
	db     *orm.DB
	model  orm.Model
	fields []string
	logFn  func(messages ...any)
}

// NewManager creates a Manager for model. With no fields given, the
// model's SearchFields() are used when it implements Searchable, and its
// orm.ConstraintFulltext columns otherwise.
func NewManager(db *orm.DB, model orm.Model, fields ...string) *Manager {
	if len(fields) == 0 {
		if s, ok := model.(Searchable); ok {
			fields = s.SearchFields()
		} else {
			fields = orm.FulltextColumns(model)
		}
	}
	return &Manager{
		db:     db,
		model:  model,
		fields: append([]string(nil), fields...),
	}
}

// SetLog sets the log function for the statements Search builds.
// If not set, messages are silently discarded.
func (m *Manager) SetLog(fn func(messages ...any)) {
	m.logFn = fn
}

// Fields returns a copy of the default search fields.
func (m *Manager) Fields() []string {
	return append([]string(nil), m.fields...)
}

// Search builds an unexecuted Query matching text against fields, or the
// Manager's fields when none are given. ModeAuto infers the mode from the
// text; any other mode is used as is.
func (m *Manager) Search(text string, mode Mode, fields ...string) (*Query, error) {
	if !mode.valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	if len(fields) == 0 {
		fields = m.fields
	}

	res, err := Resolve(m.db, m.model, fields)
	if err != nil {
		return nil, err
	}

	mode = SelectMode(text, mode)
	columns := res.Quoted(m.db.QuoteName)
	predicate := Predicate(columns, mode)

	qb := m.db.Query(m.model).Where(orm.Raw(predicate, text))
	if len(res.Related) > 0 {
		qb.SelectRelated(res.Related...)
	}

	m.log("ftsearch:", m.model.TableName(), mode.String(), predicate)

	return &Query{
		qb:        qb,
		text:      text,
		mode:      mode,
		predicate: predicate,
		res:       res,
	}, nil
}

// log emits a message via the configured log function, if any.
func (m *Manager) log(messages ...any) {
	if m.logFn != nil {
		m.logFn(messages...)
	}
}
