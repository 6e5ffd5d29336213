package orm

// Logic values joining a condition to the ones before it.
const (
	LogicAnd = "AND"
	LogicOr  = "OR"
)

// OpRaw is the operator of conditions built by Raw.
const OpRaw = "RAW"

// Condition is one WHERE predicate. Build it with Eq, Like, Raw and the
// other helpers; the zero value is not meaningful.
type Condition struct {
	field    string
	operator string
	value    any
	logic    string
}

func (c Condition) Field() string    { return c.field }
func (c Condition) Operator() string { return c.operator }
func (c Condition) Value() any       { return c.value }
func (c Condition) Logic() string    { return c.logic }

// Args returns the bound arguments of a Raw condition, or the single
// comparison value otherwise.
func (c Condition) Args() []any {
	if args, ok := c.value.([]any); ok && c.operator == OpRaw {
		return args
	}
	return []any{c.value}
}

func compare(field, op string, value any) Condition {
	return Condition{field: field, operator: op, value: value, logic: LogicAnd}
}

// Eq matches field = value.
func Eq(field string, value any) Condition { return compare(field, "=", value) }

// Neq matches field != value.
func Neq(field string, value any) Condition { return compare(field, "!=", value) }

// Gt matches field > value.
func Gt(field string, value any) Condition { return compare(field, ">", value) }

// Gte matches field >= value.
func Gte(field string, value any) Condition { return compare(field, ">=", value) }

// Lt matches field < value.
func Lt(field string, value any) Condition { return compare(field, "<", value) }

// Lte matches field <= value.
func Lte(field string, value any) Condition { return compare(field, "<=", value) }

// Like matches field LIKE pattern.
func Like(field string, pattern any) Condition { return compare(field, "LIKE", pattern) }

// Raw splices a literal SQL fragment into the WHERE clause. args are bound
// to its placeholders and never interpolated, so sql must not carry
// caller-supplied text.
func Raw(sql string, args ...any) Condition {
	return Condition{field: sql, operator: OpRaw, value: args, logic: LogicAnd}
}

// Or joins c to the preceding conditions with OR instead of AND.
func Or(c Condition) Condition {
	c.logic = LogicOr
	return c
}
