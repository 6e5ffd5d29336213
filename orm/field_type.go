package orm

// FieldType is the storage class of a column, independent of dialect.
type FieldType int

const (
	TypeText FieldType = iota
	TypeInt64
	TypeFloat64
	TypeBool
	TypeBlob
)

var fieldTypeNames = [...]string{"text", "int64", "float64", "bool", "blob"}

func (t FieldType) String() string {
	if t >= 0 && int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return "unknown"
}

// Constraint flags combine with |.
type Constraint int

const ConstraintNone Constraint = 0

const (
	ConstraintPK            Constraint = 1 << iota // primary key
	ConstraintUnique                               // UNIQUE
	ConstraintNotNull                              // NOT NULL
	ConstraintAutoIncrement                        // AUTO_INCREMENT
	ConstraintFulltext                             // member of a FULLTEXT index
)

// Field is one column of a Model. Schema(), Values() and Pointers()
// list fields in the same order.
//
// A field with Ref is a foreign key. Relation is the name used to follow
// it ("author" for "author_id"); lookups by that name find the FK field.
type Field struct {
	Name        string
	Type        FieldType
	Constraints Constraint
	Ref         string // referenced table
	RefColumn   string // referenced column; empty means Ref's primary key
	Relation    string
}

// Has reports whether every flag in c is set on f.
func (f Field) Has(c Constraint) bool {
	return f.Constraints&c == c
}
