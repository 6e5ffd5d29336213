package orm_test

import (
	"github.com/tinywasm/ftsearch/orm"
)

// MockCompiler captures the query and returns a predefined plan.
type MockCompiler struct {
	LastQuery  orm.Query
	LastModel  orm.Model
	Queries    []orm.Query
	ReturnPlan orm.Plan
	ReturnErr  error
}

func (m *MockCompiler) Compile(q orm.Query, model orm.Model) (orm.Plan, error) {
	m.LastQuery = q
	m.LastModel = model
	m.Queries = append(m.Queries, q)
	if m.ReturnPlan.Query == "" {
		m.ReturnPlan.Query = "MOCK_QUERY"
	}
	return m.ReturnPlan, m.ReturnErr
}

// MockExecutor captures execution calls.
type MockExecutor struct {
	ExecutedQueries []string
	ExecutedArgs    [][]any
	ReturnExecErr   error
	ReturnQueryRow  orm.Scanner
	ReturnQueryRows orm.Rows
	ReturnQueryErr  error
	ReturnCloseErr  error
	Closed          bool
}

func (m *MockExecutor) Exec(query string, args ...any) error {
	m.ExecutedQueries = append(m.ExecutedQueries, query)
	m.ExecutedArgs = append(m.ExecutedArgs, args)
	return m.ReturnExecErr
}

func (m *MockExecutor) QueryRow(query string, args ...any) orm.Scanner {
	m.ExecutedQueries = append(m.ExecutedQueries, query)
	m.ExecutedArgs = append(m.ExecutedArgs, args)
	if m.ReturnQueryRow == nil {
		return &MockScanner{}
	}
	return m.ReturnQueryRow
}

func (m *MockExecutor) Query(query string, args ...any) (orm.Rows, error) {
	m.ExecutedQueries = append(m.ExecutedQueries, query)
	m.ExecutedArgs = append(m.ExecutedArgs, args)
	if m.ReturnQueryRows == nil {
		return &MockRows{}, m.ReturnQueryErr
	}
	return m.ReturnQueryRows, m.ReturnQueryErr
}

func (m *MockExecutor) Close() error {
	m.Closed = true
	return m.ReturnCloseErr
}

// MockScanner returns ScanErr, or copies Values into int64/any destinations.
type MockScanner struct {
	ScanErr  error
	Values   []any
	LastDest []any
}

func (m *MockScanner) Scan(dest ...any) error {
	m.LastDest = dest
	if m.ScanErr != nil {
		return m.ScanErr
	}
	for i, v := range m.Values {
		if i >= len(dest) {
			break
		}
		switch d := dest[i].(type) {
		case *int64:
			*d = v.(int64)
		case *any:
			*d = v
		}
	}
	return nil
}

type MockRows struct {
	Count    int
	Current  int
	ScanErr  error
	CloseErr error
	ErrVal   error
	LastDest []any
}

func (m *MockRows) Next() bool {
	if m.Current < m.Count {
		m.Current++
		return true
	}
	return false
}

func (m *MockRows) Scan(dest ...any) error {
	m.LastDest = dest
	return m.ScanErr
}

func (m *MockRows) Close() error {
	return m.CloseErr
}

func (m *MockRows) Err() error {
	return m.ErrVal
}

// MockModel is a mock implementation of the Model interface.
type MockModel struct {
	Table  string
	Fields []orm.Field
	Vals   []any
	Holds  map[string]orm.Model
}

func (m *MockModel) TableName() string   { return m.Table }
func (m *MockModel) Schema() []orm.Field { return m.Fields }
func (m *MockModel) Values() []any       { return m.Vals }
func (m *MockModel) Pointers() []any {
	ptrs := make([]any, len(m.Fields))
	for i := range ptrs {
		ptrs[i] = new(any)
	}
	return ptrs
}

func (m *MockModel) Related(relation string) orm.Model {
	if rm, ok := m.Holds[relation]; ok {
		return rm
	}
	return nil
}

// textFields builds a TypeText schema for column names.
func textFields(names ...string) []orm.Field {
	fields := make([]orm.Field, len(names))
	for i, n := range names {
		fields[i] = orm.Field{Name: n, Type: orm.TypeText}
	}
	return fields
}

// MockTxExecutor ...
type MockTxExecutor struct {
	MockExecutor
	Bound      *MockTxBoundExecutor
	BeginTxErr error
}

func (m *MockTxExecutor) BeginTx() (orm.TxBoundExecutor, error) {
	if m.BeginTxErr != nil {
		return nil, m.BeginTxErr
	}
	if m.Bound == nil {
		m.Bound = &MockTxBoundExecutor{}
	}
	return m.Bound, nil
}

type MockTxBoundExecutor struct {
	MockExecutor
	CommitCalled   bool
	RollbackCalled bool
	CommitErr      error
	RollbackErr    error
}

func (m *MockTxBoundExecutor) Commit() error {
	m.CommitCalled = true
	return m.CommitErr
}

func (m *MockTxBoundExecutor) Rollback() error {
	m.RollbackCalled = true
	return m.RollbackErr
}

// blogModels returns a posts model with an author relation and the
// authors model it points to.
func blogModels() (*MockModel, *MockModel) {
	authors := &MockModel{
		Table: "authors",
		Fields: []orm.Field{
			{Name: "id", Type: orm.TypeInt64, Constraints: orm.ConstraintPK},
			{Name: "name", Type: orm.TypeText},
		},
	}
	posts := &MockModel{
		Table: "posts",
		Fields: []orm.Field{
			{Name: "id", Type: orm.TypeInt64, Constraints: orm.ConstraintPK},
			{Name: "title", Type: orm.TypeText},
			{Name: "author_id", Type: orm.TypeInt64, Ref: "authors", Relation: "author"},
			{Name: "editor_id", Type: orm.TypeInt64},
		},
	}
	return posts, authors
}
