// Package ftsearch adds MySQL/MariaDB full-text search to the orm package.
//
// A Manager is built once per model with a list of logical field names.
// A name is either a local field ("title") or one hop through a foreign
// key ("author.name"). Search resolves those names to quoted
// `table`.`column` identifiers, picks a search mode and returns a Query
// whose WHERE clause carries
//
//	MATCH(`posts`.`title`, `authors`.`name`) AGAINST(? IN BOOLEAN MODE)
//
// with the search text bound as a parameter. Relations crossed by a field
// are eager loaded with an inner join.
//
// The database needs a FULLTEXT index over the matched columns; IndexDDL
// prints the statements that create it.
package ftsearch
