package orm

// Action represents the type of database operation.
type Action int

const (
	ActionCreate Action = iota
	ActionReadOne
	ActionUpdate
	ActionDelete
	ActionReadAll
	ActionCount
)

// Order represents a sort order for a query.
// It is a sealed value type constructed via QB.OrderBy().
type Order struct {
	column string
	dir    string
}

func (o Order) Column() string { return o.column }
func (o Order) Dir() string    { return o.dir }

// Join describes an inner join from the query table to a related table.
// It is built by QB.SelectRelated() from the model's FK metadata.
type Join struct {
	Relation  string // logical relation name, e.g. "author"
	Table     string // related table, e.g. "authors"
	Alias     string // name the joined table goes by; empty means Table
	Column    string // FK column on the query table, e.g. "author_id"
	RefColumn string // referenced column on the related table, e.g. "id"
}

// Name returns the alias the join's columns are qualified with.
func (j Join) Name() string {
	if j.Alias != "" {
		return j.Alias
	}
	return j.Table
}

// Query represents a database query to be executed by an Executor.
// Compilers read these fields to build Plans.
// For reads, Columns holds qualified "table.column" names.
type Query struct {
	Action     Action
	Table      string
	Columns    []string
	Values     []any
	Conditions []Condition
	Joins      []Join
	OrderBy    []Order
	GroupBy    []string
	Limit      int
	Offset     int
}
