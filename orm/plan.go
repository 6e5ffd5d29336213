package orm

// Plan describes how the Executor should run the operation.
type Plan struct {
	Mode  Action
	Query string
	Args  []any
}

// Compiler converts ORM queries into engine instructions.
type Compiler interface {
	Compile(q Query, m Model) (Plan, error)
}

// Quoter is implemented by compilers that know their dialect's
// identifier quoting.
type Quoter interface {
	QuoteName(name string) string
}
