package orm

import "strings"

// DB represents a database connection.
// Consumers instantiate it via New().
type DB struct {
	exec     Executor
	compiler Compiler
	models   *Registry
}

// New creates a new DB instance.
func New(exec Executor, compiler Compiler) *DB {
	return &DB{
		exec:     exec,
		compiler: compiler,
		models:   NewRegistry(),
	}
}

// Register records models so relations pointing at their tables resolve.
func (db *DB) Register(models ...Model) *DB {
	db.models.Register(models...)
	return db
}

// Models returns the model registry.
func (db *DB) Models() *Registry {
	return db.models
}

// QuoteName quotes an identifier for the compiler's dialect.
// Compilers that do not implement Quoter get QuoteIdent.
func (db *DB) QuoteName(name string) string {
	if q, ok := db.compiler.(Quoter); ok {
		return q.QuoteName(name)
	}
	return QuoteIdent(name)
}

// QuoteIdent wraps name in backticks, doubling embedded backticks.
// A name that is already a well-formed quoted identifier is returned
// unchanged.
func QuoteIdent(name string) string {
	if isQuotedIdent(name) {
		return name
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// isQuotedIdent reports whether name is `...` with every inner backtick
// doubled.
func isQuotedIdent(name string) bool {
	if len(name) < 2 || name[0] != '`' || name[len(name)-1] != '`' {
		return false
	}
	inner := name[1 : len(name)-1]
	for i := 0; i < len(inner); i++ {
		if inner[i] != '`' {
			continue
		}
		if i+1 >= len(inner) || inner[i+1] != '`' {
			return false
		}
		i++
	}
	return true
}

// Create inserts a new model into the database.
func (db *DB) Create(m Model) error {
	if err := validate(ActionCreate, m); err != nil {
		return err
	}
	q := Query{
		Action:  ActionCreate,
		Table:   m.TableName(),
		Columns: columnNames(m),
		Values:  m.Values(),
	}
	return db.execute(q, m)
}

// Update updates a model in the database.
func (db *DB) Update(m Model, conds ...Condition) error {
	if err := validate(ActionUpdate, m); err != nil {
		return err
	}
	q := Query{
		Action:     ActionUpdate,
		Table:      m.TableName(),
		Columns:    columnNames(m),
		Values:     m.Values(),
		Conditions: conds,
	}
	return db.execute(q, m)
}

// Delete deletes a model from the database.
func (db *DB) Delete(m Model, conds ...Condition) error {
	if err := validate(ActionDelete, m); err != nil {
		return err
	}
	q := Query{
		Action:     ActionDelete,
		Table:      m.TableName(),
		Conditions: conds,
	}
	return db.execute(q, m)
}

func (db *DB) execute(q Query, m Model) error {
	plan, err := db.compiler.Compile(q, m)
	if err != nil {
		return err
	}
	return db.exec.Exec(plan.Query, plan.Args...)
}

// Query creates a new QB instance.
func (db *DB) Query(m Model) *QB {
	return &QB{
		db:    db,
		model: m,
	}
}

// Close closes the underlying executor if it supports it.
func (db *DB) Close() error {
	if c, ok := db.exec.(Closer); ok {
		return c.Close()
	}
	return nil
}

// RawExecutor returns the underlying executor instance.
func (db *DB) RawExecutor() Executor {
	return db.exec
}

func columnNames(m Model) []string {
	schema := m.Schema()
	cols := make([]string, len(schema))
	for i, f := range schema {
		cols[i] = f.Name
	}
	return cols
}
