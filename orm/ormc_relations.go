//go:build !wasm

package orm

import (
	"maps"
	"slices"

	"github.com/tinywasm/fmt"
)

// RelationInfo is a generated loader for the children of a one-to-many
// relation, filtered on the child's FK column.
type RelationInfo struct {
	ChildStruct string
	FKField     string // Go field on the child
	FKColumn    string
	LoaderName  string // ReadAll<Child>By<FKField>
	FKFieldType string
}

// ResolveRelations attaches a RelationInfo to each child struct referenced
// by a parent's slice field, then checks fulltext=<column> targets.
// Parents are visited in name order so output is stable.
func (o *Ormc) ResolveRelations(all map[string]StructInfo) {
	parents := slices.Sorted(maps.Keys(all))

	for _, parent := range parents {
		for _, sf := range all[parent].SliceFields {
			child, ok := all[sf.ElemType]
			if !ok {
				o.log(fmt.Sprintf("Warning: %s.%s holds unknown struct %s; no loader generated", parent, sf.Name, sf.ElemType))
				continue
			}
			rel, ok := loaderFor(child, all[parent].TableName)
			if !ok {
				o.log(fmt.Sprintf("Warning: %s has no ref=%s field for %s.%s; no loader generated", child.Name, all[parent].TableName, parent, sf.Name))
				continue
			}
			child.Relations = append(child.Relations, rel)
			all[child.Name] = child
		}
	}

	for _, name := range parents {
		o.checkSearchPaths(all[name], all)
	}
}

// loaderFor builds the loader over the first field of child referencing
// parentTable.
func loaderFor(child StructInfo, parentTable string) (RelationInfo, bool) {
	for _, f := range child.Fields {
		if f.Ref == parentTable {
			return RelationInfo{
				ChildStruct: child.Name,
				FKField:     f.Name,
				FKColumn:    f.ColumnName,
				LoaderName:  "ReadAll" + child.Name + "By" + f.Name,
				FKFieldType: f.GoType,
			}, true
		}
	}
	return RelationInfo{}, false
}

// checkSearchPaths warns about fulltext=<column> options whose column does
// not exist on the referenced table. The generated code still compiles; the
// search would fail at lookup time.
func (o *Ormc) checkSearchPaths(info StructInfo, all map[string]StructInfo) {
	for _, f := range info.Fields {
		if f.Ref == "" || f.SearchPath == "" || f.SearchPath == f.ColumnName {
			continue
		}
		target, ok := structByTable(all, f.Ref)
		if !ok {
			continue
		}
		column := fmt.Convert(f.SearchPath).TrimPrefix(f.Relation + ".").String()
		if !hasColumn(target, column) {
			o.log(fmt.Sprintf("Warning: %s.%s searches %s.%s which is not a column of %s", info.Name, f.Name, f.Ref, column, target.Name))
		}
	}
}

func structByTable(all map[string]StructInfo, table string) (StructInfo, bool) {
	for _, info := range all {
		if info.TableName == table {
			return info, true
		}
	}
	return StructInfo{}, false
}

func hasColumn(info StructInfo, column string) bool {
	for _, f := range info.Fields {
		if f.ColumnName == column {
			return true
		}
	}
	return false
}
