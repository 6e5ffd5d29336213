package orm

import "errors"

// ErrNotFound is returned when ReadOne() finds no matching row.
var ErrNotFound = errors.New("record not found")

// ErrValidation is returned when validate() finds a mismatch.
var ErrValidation = errors.New("validation error")

// ErrEmptyTable is returned when TableName() returns an empty string.
var ErrEmptyTable = errors.New("empty table name")

// ErrNoTxSupport is returned by DB.Tx() when the executor does not implement TxExecutor.
var ErrNoTxSupport = errors.New("transaction not supported")

// ErrFieldNotFound is returned when a field name is not part of a model's schema.
var ErrFieldNotFound = errors.New("field not found")

// ErrNotRelation is returned when a relation lookup hits a field without Ref.
var ErrNotRelation = errors.New("field is not a relation")

// ErrUnknownModel is returned when a related table has no registered model.
var ErrUnknownModel = errors.New("model not registered")

// FieldError reports a failed field or relation lookup on a table.
type FieldError struct {
	Table string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Err.Error() + ": " + e.Table + "." + e.Field
}

func (e *FieldError) Unwrap() error { return e.Err }
