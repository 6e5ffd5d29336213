package ftsearch

import (
	"strings"
	"unicode/utf8"

	"github.com/tinywasm/ftsearch/orm"
)

// maxIdentLen is the MySQL identifier length limit.
const maxIdentLen = 64

// IndexDDL returns one ALTER TABLE ... ADD FULLTEXT INDEX statement per
// table touched by fields, covering that table's resolved columns in
// first-seen order.
func IndexDDL(db *orm.DB, m orm.Model, fields []string) ([]string, error) {
	res, err := Resolve(db, m, fields)
	if err != nil {
		return nil, err
	}

	var tables []string
	byTable := make(map[string][]string)
	for _, c := range res.Columns {
		cols, ok := byTable[c.Table]
		if !ok {
			tables = append(tables, c.Table)
		}
		// A self relation reaches the same column under two aliases.
		if !contains(cols, c.Name) {
			byTable[c.Table] = append(cols, c.Name)
		}
	}

	stmts := make([]string, 0, len(tables))
	for _, table := range tables {
		cols := byTable[table]
		quoted := make([]string, len(cols))
		for i, c := range cols {
			quoted[i] = db.QuoteName(c)
		}
		stmts = append(stmts, "ALTER TABLE "+db.QuoteName(table)+
			" ADD FULLTEXT INDEX "+db.QuoteName(indexName(table, cols))+
			" ("+strings.Join(quoted, ", ")+")")
	}
	return stmts, nil
}

// indexName truncates to maxIdentLen characters, not bytes, as MySQL
// counts them.
func indexName(table string, cols []string) string {
	name := "ft_" + table + "_" + strings.Join(cols, "_")
	if utf8.RuneCountInString(name) <= maxIdentLen {
		return name
	}
	return string([]rune(name)[:maxIdentLen])
}
