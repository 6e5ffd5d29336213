package orm

import "errors"

// TxBoundExecutor runs statements inside one open transaction.
type TxBoundExecutor interface {
	Executor
	Commit() error
	Rollback() error
}

// TxExecutor is an Executor that can open transactions.
type TxExecutor interface {
	Executor
	BeginTx() (TxBoundExecutor, error)
}

// Tx runs fn against a DB bound to a new transaction. The transaction
// commits when fn returns nil and rolls back otherwise, including when fn
// panics. A failed rollback is joined to fn's error.
func (db *DB) Tx(fn func(tx *DB) error) (err error) {
	txExec, ok := db.exec.(TxExecutor)
	if !ok {
		return ErrNoTxSupport
	}

	bound, err := txExec.BeginTx()
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			bound.Rollback()
			panic(p)
		}
	}()

	if err := fn(db.bind(bound)); err != nil {
		if rbErr := bound.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return bound.Commit()
}

// bind returns a DB sharing db's compiler and registry over exec.
func (db *DB) bind(exec Executor) *DB {
	return &DB{exec: exec, compiler: db.compiler, models: db.models}
}
