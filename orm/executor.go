package orm

// Executor runs compiled plans. *sql.DB and *sql.Tx fit it through a thin
// adapter (see package sqlexec); tests use in-memory fakes.
type Executor interface {
	Exec(query string, args ...any) error
	QueryRow(query string, args ...any) Scanner
	Query(query string, args ...any) (Rows, error)
}

// Scanner reads one row. Implementations report a missing row as
// ErrNotFound.
type Scanner interface {
	Scan(dest ...any) error
}

// Rows iterates a result set. *sql.Rows satisfies it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// Closer is implemented by executors that own a connection pool.
type Closer interface {
	Close() error
}
