package orm

// QB represents a query builder.
// Consumers hold a *QB reference in variables for incremental building.
type QB struct {
	db      *DB
	model   Model
	conds   []Condition
	related []string
	orderBy []Order
	groupBy []string
	limit   int
	offset  int
}

// Where adds conditions to the query.
func (qb *QB) Where(conds ...Condition) *QB {
	qb.conds = append(qb.conds, conds...)
	return qb
}

// Limit sets the limit for the query.
func (qb *QB) Limit(limit int) *QB {
	qb.limit = limit
	return qb
}

// Offset sets the offset for the query.
func (qb *QB) Offset(offset int) *QB {
	qb.offset = offset
	return qb
}

// OrderBy adds an order clause to the query.
func (qb *QB) OrderBy(column, dir string) *QB {
	qb.orderBy = append(qb.orderBy, Order{column: column, dir: dir})
	return qb
}

// GroupBy adds a group by clause to the query.
func (qb *QB) GroupBy(columns ...string) *QB {
	qb.groupBy = append(qb.groupBy, columns...)
	return qb
}

// SelectRelated requests an inner join for each relation so reads can
// reference and scan the related table's columns in the same statement.
// Relations are resolved through the DB registry when the query runs.
func (qb *QB) SelectRelated(relations ...string) *QB {
	for _, rel := range relations {
		if !contains(qb.related, rel) {
			qb.related = append(qb.related, rel)
		}
	}
	return qb
}

// Related returns the relations requested via SelectRelated.
func (qb *QB) Related() []string {
	return qb.related
}

// Model returns the model the query was built for.
func (qb *QB) Model() Model {
	return qb.model
}

// SQL compiles the ReadAll statement without executing it.
func (qb *QB) SQL() (string, []any, error) {
	q, err := qb.readQuery(ActionReadAll)
	if err != nil {
		return "", nil, err
	}
	plan, err := qb.db.compiler.Compile(q, qb.model)
	if err != nil {
		return "", nil, err
	}
	return plan.Query, plan.Args, nil
}

// ReadOne executes the query and returns a single result.
func (qb *QB) ReadOne() error {
	q, err := qb.readQuery(ActionReadOne)
	if err != nil {
		return err
	}
	plan, err := qb.db.compiler.Compile(q, qb.model)
	if err != nil {
		return err
	}

	row := qb.db.exec.QueryRow(plan.Query, plan.Args...)
	if err := row.Scan(qb.destinations(qb.model)...); err != nil {
		return err
	}
	return nil
}

// ReadAll executes the query and returns all results.
func (qb *QB) ReadAll(factory func() Model, each func(Model)) error {
	q, err := qb.readQuery(ActionReadAll)
	if err != nil {
		return err
	}
	plan, err := qb.db.compiler.Compile(q, qb.model)
	if err != nil {
		return err
	}

	rows, err := qb.db.exec.Query(plan.Query, plan.Args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		m := factory()
		if err := rows.Scan(qb.destinations(m)...); err != nil {
			return err
		}
		each(m)
	}
	return rows.Err()
}

// Count runs SELECT COUNT(*) over the query table with the query's
// conditions. Joins requested via SelectRelated are not part of the
// count statement, so conditions that reference related columns fail
// at the database. Use Len for those.
func (qb *QB) Count() (int, error) {
	if err := validate(ActionCount, qb.model); err != nil {
		return 0, err
	}
	q := Query{
		Action:     ActionCount,
		Table:      qb.model.TableName(),
		Conditions: qb.conds,
	}
	plan, err := qb.db.compiler.Compile(q, qb.model)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := qb.db.exec.QueryRow(plan.Query, plan.Args...).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Len runs the full ReadAll statement and returns the number of rows.
// Row values are scanned into throwaway destinations.
func (qb *QB) Len() (int, error) {
	q, err := qb.readQuery(ActionReadAll)
	if err != nil {
		return 0, err
	}
	plan, err := qb.db.compiler.Compile(q, qb.model)
	if err != nil {
		return 0, err
	}

	rows, err := qb.db.exec.Query(plan.Query, plan.Args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		dest := make([]any, len(q.Columns))
		for i := range dest {
			dest[i] = new(any)
		}
		if err := rows.Scan(dest...); err != nil {
			return 0, err
		}
		n++
	}
	return n, rows.Err()
}

// readQuery validates the model, resolves joins and builds the read Query.
func (qb *QB) readQuery(action Action) (Query, error) {
	if err := validate(action, qb.model); err != nil {
		return Query{}, err
	}

	columns := QualifiedColumns(qb.model)
	joins, models, err := qb.db.models.Joins(qb.model, qb.related)
	if err != nil {
		return Query{}, err
	}
	for i, j := range joins {
		if held := relatedOf(qb.model, j.Relation); held != nil {
			columns = append(columns, AliasedColumns(j.Name(), models[i])...)
		}
	}

	limit := qb.limit
	if action == ActionReadOne {
		limit = 1 // Force limit 1
	}

	return Query{
		Action:     action,
		Table:      qb.model.TableName(),
		Columns:    columns,
		Conditions: qb.conds,
		Joins:      joins,
		OrderBy:    qb.orderBy,
		GroupBy:    qb.groupBy,
		Limit:      limit,
		Offset:     qb.offset,
	}, nil
}

// destinations returns the scan targets of m followed by those of every
// eager-loaded relation m holds, in join order.
func (qb *QB) destinations(m Model) []any {
	dest := m.Pointers()
	for _, rel := range qb.related {
		if rm := relatedOf(m, joinRelation(qb.model, rel)); rm != nil {
			dest = append(dest, rm.Pointers()...)
		}
	}
	return dest
}

func relatedOf(m Model, relation string) Model {
	r, ok := m.(Relator)
	if !ok {
		return nil
	}
	return r.Related(relation)
}

// joinRelation maps a SelectRelated argument to the field's Relation,
// which may differ when the caller named the FK column.
func joinRelation(m Model, rel string) string {
	if f, err := LookupField(m, rel); err == nil && f.Relation != "" {
		return f.Relation
	}
	return rel
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
