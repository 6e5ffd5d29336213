// Package mysql compiles orm queries into MySQL/MariaDB statements.
package mysql

import (
	"errors"
	"math"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/tinywasm/fmt"
	"github.com/tinywasm/ftsearch/orm"
)

// ErrUnsupported is returned for actions or operators the compiler cannot render.
var ErrUnsupported = errors.New("unsupported by mysql compiler")

// ErrInvalidOrder is returned for sort directions other than ASC and DESC.
var ErrInvalidOrder = errors.New("invalid order direction")

// Compiler implements orm.Compiler and orm.Quoter for MySQL and MariaDB.
type Compiler struct{}

// New creates a Compiler.
func New() *Compiler {
	return &Compiler{}
}

// QuoteName wraps name in backticks, doubling embedded backticks.
// Well-formed quoted names are returned unchanged.
func (c *Compiler) QuoteName(name string) string {
	return orm.QuoteIdent(name)
}

// column quotes a "table.column" reference. Bare columns are qualified
// with table so they stay unambiguous once joins are present.
func (c *Compiler) column(table, name string) string {
	if i := strings.IndexByte(name, '.'); i > 0 {
		return c.QuoteName(name[:i]) + "." + c.QuoteName(name[i+1:])
	}
	return c.QuoteName(table) + "." + c.QuoteName(name)
}

// Compile renders q as a single statement with ? placeholders.
func (c *Compiler) Compile(q orm.Query, m orm.Model) (orm.Plan, error) {
	var stmt sq.Sqlizer
	var err error

	switch q.Action {
	case orm.ActionCreate:
		stmt, err = c.insert(q)
	case orm.ActionUpdate:
		stmt, err = c.update(q)
	case orm.ActionDelete:
		stmt, err = c.delete(q)
	case orm.ActionReadOne, orm.ActionReadAll:
		stmt, err = c.selectRows(q, m)
	case orm.ActionCount:
		stmt, err = c.count(q)
	default:
		return orm.Plan{}, fmt.Err(ErrUnsupported, "action")
	}
	if err != nil {
		return orm.Plan{}, err
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		return orm.Plan{}, err
	}
	return orm.Plan{Mode: q.Action, Query: query, Args: args}, nil
}

func (c *Compiler) insert(q orm.Query) (sq.Sqlizer, error) {
	cols := make([]string, len(q.Columns))
	for i, col := range q.Columns {
		cols[i] = c.QuoteName(col)
	}
	return sq.Insert(c.QuoteName(q.Table)).Columns(cols...).Values(q.Values...), nil
}

func (c *Compiler) update(q orm.Query) (sq.Sqlizer, error) {
	b := sq.Update(c.QuoteName(q.Table))
	for i, col := range q.Columns {
		b = b.Set(c.QuoteName(col), q.Values[i])
	}
	where, err := c.where(q.Table, q.Conditions)
	if err != nil {
		return nil, err
	}
	if where != nil {
		b = b.Where(where)
	}
	return b, nil
}

func (c *Compiler) delete(q orm.Query) (sq.Sqlizer, error) {
	b := sq.Delete(c.QuoteName(q.Table))
	where, err := c.where(q.Table, q.Conditions)
	if err != nil {
		return nil, err
	}
	if where != nil {
		b = b.Where(where)
	}
	return b, nil
}

func (c *Compiler) selectRows(q orm.Query, m orm.Model) (sq.Sqlizer, error) {
	names := q.Columns
	if len(names) == 0 && m != nil {
		names = orm.QualifiedColumns(m)
	}
	cols := make([]string, len(names))
	for i, name := range names {
		cols[i] = c.column(q.Table, name)
	}

	b := sq.Select(cols...).From(c.QuoteName(q.Table))
	for _, j := range q.Joins {
		target := c.QuoteName(j.Table)
		if j.Name() != j.Table {
			target += " AS " + c.QuoteName(j.Name())
		}
		b = b.Join(target + " ON " + c.column(j.Name(), j.RefColumn) + " = " + c.column(q.Table, j.Column))
	}

	where, err := c.where(q.Table, q.Conditions)
	if err != nil {
		return nil, err
	}
	if where != nil {
		b = b.Where(where)
	}

	if len(q.GroupBy) > 0 {
		group := make([]string, len(q.GroupBy))
		for i, g := range q.GroupBy {
			group[i] = c.column(q.Table, g)
		}
		b = b.GroupBy(group...)
	}

	for _, o := range q.OrderBy {
		dir := strings.ToUpper(o.Dir())
		if dir == "" {
			dir = "ASC"
		}
		if dir != "ASC" && dir != "DESC" {
			return nil, fmt.Err(ErrInvalidOrder, o.Dir())
		}
		b = b.OrderBy(c.column(q.Table, o.Column()) + " " + dir)
	}

	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	} else if q.Offset > 0 {
		// MySQL has no OFFSET without LIMIT.
		b = b.Limit(math.MaxUint64)
	}
	if q.Offset > 0 {
		b = b.Offset(uint64(q.Offset))
	}
	return b, nil
}

// count renders SELECT COUNT(*) over the base table only. q.Joins is not
// consulted, matching orm.QB.Count.
func (c *Compiler) count(q orm.Query) (sq.Sqlizer, error) {
	b := sq.Select("COUNT(*)").From(c.QuoteName(q.Table))
	where, err := c.where(q.Table, q.Conditions)
	if err != nil {
		return nil, err
	}
	if where != nil {
		b = b.Where(where)
	}
	return b, nil
}

// where folds conditions left to right, each joined to the previous
// expression by its own logic (AND unless built with orm.Or).
func (c *Compiler) where(table string, conds []orm.Condition) (sq.Sqlizer, error) {
	var expr sq.Sqlizer
	for _, cond := range conds {
		e, err := c.condition(table, cond)
		if err != nil {
			return nil, err
		}
		switch {
		case expr == nil:
			expr = e
		case cond.Logic() == orm.LogicOr:
			expr = sq.Or{expr, e}
		default:
			expr = sq.And{expr, e}
		}
	}
	return expr, nil
}

func (c *Compiler) condition(table string, cond orm.Condition) (sq.Sqlizer, error) {
	if cond.Operator() == orm.OpRaw {
		return sq.Expr(cond.Field(), cond.Args()...), nil
	}

	col := c.column(table, cond.Field())
	v := cond.Value()
	switch cond.Operator() {
	case "=":
		return sq.Eq{col: v}, nil
	case "!=":
		return sq.NotEq{col: v}, nil
	case ">":
		return sq.Gt{col: v}, nil
	case ">=":
		return sq.GtOrEq{col: v}, nil
	case "<":
		return sq.Lt{col: v}, nil
	case "<=":
		return sq.LtOrEq{col: v}, nil
	case "LIKE":
		return sq.Like{col: v}, nil
	}
	return nil, fmt.Err(ErrUnsupported, "operator", cond.Operator())
}
