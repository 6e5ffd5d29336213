package ftsearch_test

import (
	"errors"
	"strings"

	"github.com/tinywasm/ftsearch/mysql"
	"github.com/tinywasm/ftsearch/orm"
)

type author struct {
	ID   int64
	Name string
	Bio  string
}

func (a *author) TableName() string { return "authors" }
func (a *author) Schema() []orm.Field {
	return []orm.Field{
		{Name: "id", Type: orm.TypeInt64, Constraints: orm.ConstraintPK},
		{Name: "name", Type: orm.TypeText},
		{Name: "bio", Type: orm.TypeText},
	}
}
func (a *author) Values() []any   { return []any{a.ID, a.Name, a.Bio} }
func (a *author) Pointers() []any { return []any{&a.ID, &a.Name, &a.Bio} }

type post struct {
	ID       int64
	Title    string
	Body     string
	AuthorID int64
	EditorID int64
	Author   *author
}

func (p *post) TableName() string { return "posts" }
func (p *post) Schema() []orm.Field {
	return []orm.Field{
		{Name: "id", Type: orm.TypeInt64, Constraints: orm.ConstraintPK},
		{Name: "title", Type: orm.TypeText},
		{Name: "body", Type: orm.TypeText},
		{Name: "author_id", Type: orm.TypeInt64, Ref: "authors", Relation: "author"},
		{Name: "editor_id", Type: orm.TypeInt64},
	}
}
func (p *post) Values() []any {
	return []any{p.ID, p.Title, p.Body, p.AuthorID, p.EditorID}
}
func (p *post) Pointers() []any {
	return []any{&p.ID, &p.Title, &p.Body, &p.AuthorID, &p.EditorID}
}
func (p *post) SearchFields() []string { return []string{"title", "body"} }

func (p *post) Related(relation string) orm.Model {
	if relation != "author" {
		return nil
	}
	if p.Author == nil {
		p.Author = &author{}
	}
	return p.Author
}

type category struct {
	ID       int64
	Name     string
	ParentID int64
	Parent   *category
}

func (c *category) TableName() string { return "categories" }
func (c *category) Schema() []orm.Field {
	return []orm.Field{
		{Name: "id", Type: orm.TypeInt64, Constraints: orm.ConstraintPK},
		{Name: "name", Type: orm.TypeText},
		{Name: "parent_id", Type: orm.TypeInt64, Ref: "categories", Relation: "parent"},
	}
}
func (c *category) Values() []any   { return []any{c.ID, c.Name, c.ParentID} }
func (c *category) Pointers() []any { return []any{&c.ID, &c.Name, &c.ParentID} }

func (c *category) Related(relation string) orm.Model {
	if relation != "parent" {
		return nil
	}
	if c.Parent == nil {
		c.Parent = &category{}
	}
	return c.Parent
}

// review points at authors twice.
type review struct {
	ID       int64
	Body     string
	AuthorID int64
	EditorID int64
}

func (r *review) TableName() string { return "reviews" }
func (r *review) Schema() []orm.Field {
	return []orm.Field{
		{Name: "id", Type: orm.TypeInt64, Constraints: orm.ConstraintPK},
		{Name: "body", Type: orm.TypeText},
		{Name: "author_id", Type: orm.TypeInt64, Ref: "authors", Relation: "author"},
		{Name: "editor_id", Type: orm.TypeInt64, Ref: "authors", Relation: "editor"},
	}
}
func (r *review) Values() []any   { return []any{r.ID, r.Body, r.AuthorID, r.EditorID} }
func (r *review) Pointers() []any { return []any{&r.ID, &r.Body, &r.AuthorID, &r.EditorID} }

// errUnknownColumn mimics MySQL error 1054.
var errUnknownColumn = errors.New("Error 1054 (42S22): Unknown column 'authors.name' in 'where clause'")

// fakeExec answers every read with Rows rows and rejects statements that
// reference authors columns without joining authors, as MySQL does.
type fakeExec struct {
	Rows    int
	Queries []string
	Args    [][]any
	last    *fakeRows
}

func (e *fakeExec) check(query string, args []any) error {
	e.Queries = append(e.Queries, query)
	e.Args = append(e.Args, args)
	if strings.Contains(query, "`authors`.") && !strings.Contains(query, "JOIN `authors`") {
		return errUnknownColumn
	}
	return nil
}

func (e *fakeExec) Exec(query string, args ...any) error {
	return e.check(query, args)
}

func (e *fakeExec) QueryRow(query string, args ...any) orm.Scanner {
	return fakeRow{err: e.check(query, args), n: int64(e.Rows)}
}

func (e *fakeExec) Query(query string, args ...any) (orm.Rows, error) {
	if err := e.check(query, args); err != nil {
		return nil, err
	}
	e.last = &fakeRows{n: e.Rows}
	return e.last, nil
}

type fakeRow struct {
	err error
	n   int64
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) == 1 {
		if p, ok := dest[0].(*int64); ok {
			*p = r.n
		}
	}
	return nil
}

type fakeRows struct {
	n, cur   int
	lastDest []any
}

func (r *fakeRows) Next() bool {
	if r.cur < r.n {
		r.cur++
		return true
	}
	return false
}

func (r *fakeRows) Scan(dest ...any) error {
	r.lastDest = dest
	return nil
}

func (r *fakeRows) Close() error { return nil }
func (r *fakeRows) Err() error   { return nil }

// blogDB returns a DB over exec with posts and authors registered.
func blogDB(exec orm.Executor) *orm.DB {
	return orm.New(exec, mysql.New()).Register(&post{}, &author{}, &category{}, &review{})
}
