// Package sqlexec adapts database/sql to orm.Executor.
package sqlexec

import (
	"database/sql"
	"errors"

	"github.com/tinywasm/ftsearch/orm"
)

// Executor runs orm plans on a *sql.DB.
type Executor struct {
	db *sql.DB
}

// New wraps an open *sql.DB.
func New(db *sql.DB) *Executor {
	return &Executor{db: db}
}

// Open opens driverName/dsn and verifies the connection.
func Open(driverName, dsn string) (*Executor, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return New(db), nil
}

// DB returns the wrapped pool.
func (e *Executor) DB() *sql.DB { return e.db }

func (e *Executor) Exec(query string, args ...any) error {
	_, err := e.db.Exec(query, args...)
	return err
}

func (e *Executor) QueryRow(query string, args ...any) orm.Scanner {
	return row{e.db.QueryRow(query, args...)}
}

func (e *Executor) Query(query string, args ...any) (orm.Rows, error) {
	return e.db.Query(query, args...)
}

func (e *Executor) Close() error {
	return e.db.Close()
}

// BeginTx starts a transaction bound executor.
func (e *Executor) BeginTx() (orm.TxBoundExecutor, error) {
	tx, err := e.db.Begin()
	if err != nil {
		return nil, err
	}
	return &txExecutor{tx: tx}, nil
}

type txExecutor struct {
	tx *sql.Tx
}

func (t *txExecutor) Exec(query string, args ...any) error {
	_, err := t.tx.Exec(query, args...)
	return err
}

func (t *txExecutor) QueryRow(query string, args ...any) orm.Scanner {
	return row{t.tx.QueryRow(query, args...)}
}

func (t *txExecutor) Query(query string, args ...any) (orm.Rows, error) {
	return t.tx.Query(query, args...)
}

func (t *txExecutor) Commit() error   { return t.tx.Commit() }
func (t *txExecutor) Rollback() error { return t.tx.Rollback() }

// row maps sql.ErrNoRows to orm.ErrNotFound.
type row struct {
	r *sql.Row
}

func (r row) Scan(dest ...any) error {
	err := r.r.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return orm.ErrNotFound
	}
	return err
}
