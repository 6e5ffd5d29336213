package ftsearch

import "github.com/tinywasm/ftsearch/orm"

// Query is a full-text search built by Manager.Search. Nothing runs until
// ReadOne, ReadAll or Count is called.
type Query struct {
	qb        *orm.QB
	text      string
	mode      Mode
	predicate string
	res       Resolution
}

// Where adds conditions next to the MATCH predicate.
func (q *Query) Where(conds ...orm.Condition) *Query {
	q.qb.Where(conds...)
	return q
}

// OrderBy adds an order clause.
func (q *Query) OrderBy(column, dir string) *Query {
	q.qb.OrderBy(column, dir)
	return q
}

// Limit sets the limit.
func (q *Query) Limit(limit int) *Query {
	q.qb.Limit(limit)
	return q
}

// Offset sets the offset.
func (q *Query) Offset(offset int) *Query {
	q.qb.Offset(offset)
	return q
}

// ReadOne scans the first match into the Manager's model.
func (q *Query) ReadOne() error {
	return q.qb.ReadOne()
}

// ReadAll scans every match into models created by factory.
func (q *Query) ReadAll(factory func() orm.Model, each func(orm.Model)) error {
	return q.qb.ReadAll(factory, each)
}

// Count returns the number of matches by running the full search and
// counting rows. orm.QB.Count drops the eager-load joins the MATCH
// predicate may reference, which fails with an unknown column error.
func (q *Query) Count() (int, error) {
	return q.qb.Len()
}

// SQL returns the compiled statement and its args without executing it.
func (q *Query) SQL() (string, []any, error) {
	return q.qb.SQL()
}

// QB exposes the underlying query builder.
func (q *Query) QB() *orm.QB { return q.qb }

// Text returns the search text bound to the predicate.
func (q *Query) Text() string { return q.text }

// Mode returns the resolved mode; never ModeAuto.
func (q *Query) Mode() Mode { return q.mode }

// Predicate returns the MATCH ... AGAINST condition.
func (q *Query) Predicate() string { return q.predicate }

// Columns returns the resolved columns.
func (q *Query) Columns() []Column { return q.res.Columns }

// Related returns the relations the query eager loads.
func (q *Query) Related() []string { return q.res.Related }
