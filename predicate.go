package ftsearch

import "strings"

// Predicate builds the MATCH ... AGAINST condition for quoted columns.
// The search text is never part of the result; it is bound to the single
// ? placeholder.
func Predicate(columns []string, mode Mode) string {
	var b strings.Builder
	b.WriteString("MATCH(")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") AGAINST(?")
	if clause := mode.Clause(); clause != "" {
		b.WriteString(" ")
		b.WriteString(clause)
	}
	b.WriteString(")")
	return b.String()
}
