//go:build !wasm

package orm

import (
	"go/ast"
	"go/parser"
	"go/token"

	"github.com/tinywasm/fmt"
)

// FieldInfo is the parsed metadata of one DB-mapped struct field.
type FieldInfo struct {
	Name        string
	ColumnName  string
	Type        FieldType
	Constraints Constraint
	Ref         string
	RefColumn   string
	Relation    string // logical FK name, e.g. "author" for AuthorID
	SearchPath  string // full-text field path, e.g. "title" or "author.name"
	IsPK        bool
	GoType      string
}

// SliceFieldInfo records a slice-of-struct field found in a parent struct.
// Not DB-mapped; used only for relation resolution.
type SliceFieldInfo struct {
	Name     string // e.g. "Roles"
	ElemType string // e.g. "Role"
}

// StructInfo is the parsed metadata of one model struct.
type StructInfo struct {
	Name              string
	TableName         string
	PackageName       string
	Fields            []FieldInfo
	TableNameDeclared bool
	SourceFile        string
	SliceFields       []SliceFieldInfo // populated by ParseStruct; used by ResolveRelations
	Relations         []RelationInfo   // populated by ResolveRelations; used by GenerateForFile
}

// SearchFields returns the full-text field paths declared via db:"fulltext".
func (s StructInfo) SearchFields() []string {
	var paths []string
	for _, f := range s.Fields {
		if f.SearchPath != "" {
			paths = append(paths, f.SearchPath)
		}
	}
	return paths
}

// dbTag holds the options of a db:"..." struct tag.
type dbTag struct {
	skip          bool
	pk            bool
	unique        bool
	notNull       bool
	autoIncrement bool
	ref           string
	refColumn     string
	relation      string
	fulltext      bool
	relatedSearch string // column on the Ref table, from fulltext=<column>
}

func parseDBTag(tag *ast.BasicLit) dbTag {
	var t dbTag
	if tag == nil {
		return t
	}
	raw := ""
	tagVal := fmt.Convert(tag.Value).TrimPrefix("`").TrimSuffix("`").String()
	for _, p := range fmt.Convert(tagVal).Split(" ") {
		if fmt.HasPrefix(p, "db:\"") {
			raw = fmt.Convert(p).TrimPrefix(`db:"`).TrimSuffix(`"`).String()
			break
		}
	}
	if raw == "" {
		return t
	}
	if raw == "-" {
		t.skip = true
		return t
	}
	for _, p := range fmt.Convert(raw).Split(",") {
		switch {
		case p == "pk":
			t.pk = true
		case p == "unique":
			t.unique = true
		case p == "not_null":
			t.notNull = true
		case p == "autoincrement":
			t.autoIncrement = true
		case p == "fulltext":
			t.fulltext = true
		case fmt.HasPrefix(p, "fulltext="):
			t.relatedSearch = fmt.Convert(p).TrimPrefix("fulltext=").String()
		case fmt.HasPrefix(p, "rel="):
			t.relation = fmt.Convert(p).TrimPrefix("rel=").String()
		case fmt.HasPrefix(p, "ref="):
			refParts := fmt.Convert(fmt.Convert(p).TrimPrefix("ref=").String()).Split(":")
			t.ref = refParts[0]
			if len(refParts) > 1 {
				t.refColumn = refParts[1]
			}
		}
	}
	return t
}

// goTypeOf renders the Go type of a field as written in source.
func goTypeOf(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		if pkgIdent, ok := t.X.(*ast.Ident); ok {
			return pkgIdent.Name + "." + t.Sel.Name
		}
	case *ast.ArrayType:
		if eltIdent, ok := t.Elt.(*ast.Ident); ok && eltIdent.Name == "byte" {
			return "[]byte"
		}
	}
	return ""
}

func fieldTypeOf(goType string) (FieldType, bool) {
	switch goType {
	case "string":
		return TypeText, true
	case "int", "int32", "int64", "uint", "uint32", "uint64":
		return TypeInt64, true
	case "float32", "float64":
		return TypeFloat64, true
	case "bool":
		return TypeBool, true
	case "[]byte":
		return TypeBlob, true
	}
	return 0, false
}

// fkRelationName derives the logical relation of an FK field: AuthorID -> author.
func fkRelationName(fieldName string) string {
	base := fmt.Convert(fieldName).TrimSuffix("ID").String()
	if base == "" {
		base = fieldName
	}
	return fmt.Convert(base).SnakeLow().String()
}

// detectTableName scans the AST for func (X) TableName() string on structName.
// Returns the literal return value if found, "" otherwise.
func detectTableName(node *ast.File, structName string) string {
	for _, decl := range node.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Recv == nil || len(funcDecl.Recv.List) == 0 {
			continue
		}
		if funcDecl.Name.Name != "TableName" || receiverName(funcDecl.Recv.List[0].Type) != structName {
			continue
		}
		if funcDecl.Body == nil || len(funcDecl.Body.List) != 1 {
			continue
		}
		if ret, ok := funcDecl.Body.List[0].(*ast.ReturnStmt); ok && len(ret.Results) == 1 {
			if lit, ok := ret.Results[0].(*ast.BasicLit); ok {
				return fmt.Convert(lit.Value).TrimPrefix(`"`).TrimSuffix(`"`).String()
			}
		}
	}
	return ""
}

func receiverName(recv ast.Expr) string {
	if star, ok := recv.(*ast.StarExpr); ok {
		recv = star.X
	}
	if ident, ok := recv.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

func findStruct(node *ast.File, structName string) *ast.StructType {
	var found *ast.StructType
	ast.Inspect(node, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if typeSpec, ok := n.(*ast.TypeSpec); ok && typeSpec.Name.Name == structName {
			if structType, ok := typeSpec.Type.(*ast.StructType); ok {
				found = structType
				return false
			}
		}
		return true
	})
	return found
}

// ParseStruct parses a single struct from a Go file and returns its metadata.
func (o *Ormc) ParseStruct(structName string, goFile string) (StructInfo, error) {
	if structName == "" {
		return StructInfo{}, fmt.Err("Please provide a struct name")
	}
	if goFile == "" {
		return StructInfo{}, fmt.Err("goFile path cannot be empty")
	}

	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, goFile, nil, parser.ParseComments)
	if err != nil {
		return StructInfo{}, fmt.Err(err, "Failed to parse file")
	}

	target := findStruct(node, structName)
	if target == nil {
		return StructInfo{}, fmt.Err("Struct not found in file")
	}

	tableName := detectTableName(node, structName)
	declared := tableName != ""
	if !declared {
		tableName = fmt.Convert(structName + "s").SnakeLow().String()
	}

	info := StructInfo{
		Name:              structName,
		TableName:         tableName,
		PackageName:       node.Name.Name,
		TableNameDeclared: declared,
	}

	pkFound := false
	for _, field := range target.Fields.List {
		if len(field.Names) == 0 {
			continue // embedded
		}
		fieldName := field.Names[0].Name
		if !ast.IsExported(fieldName) {
			continue
		}

		tag := parseDBTag(field.Tag)
		if tag.skip {
			continue
		}

		// []Struct fields feed relation resolution and are never DB-mapped.
		if arr, ok := field.Type.(*ast.ArrayType); ok {
			if eltIdent, ok := arr.Elt.(*ast.Ident); ok && eltIdent.Name != "byte" {
				info.SliceFields = append(info.SliceFields, SliceFieldInfo{Name: fieldName, ElemType: eltIdent.Name})
				continue
			}
		}

		goType := goTypeOf(field.Type)
		if goType == "time.Time" {
			o.log(fmt.Sprintf("Warning: time.Time not allowed for field %s.%s; use int64+tinywasm/time. Skipping.", structName, fieldName))
			continue
		}
		fieldType, ok := fieldTypeOf(goType)
		if !ok {
			o.log(fmt.Sprintf("Warning: unsupported type %s for field %s.%s; skipping. Add db:\"-\" to suppress.", goType, structName, fieldName))
			continue
		}

		fi, err := buildFieldInfo(tableName, fieldName, goType, fieldType, tag, &pkFound)
		if err != nil {
			return StructInfo{}, err
		}
		info.Fields = append(info.Fields, fi)
	}

	return info, nil
}

// buildFieldInfo applies PK detection and tag options to one field.
// pkFound is shared across the struct so only the first PK candidate wins.
func buildFieldInfo(tableName, fieldName, goType string, fieldType FieldType, tag dbTag, pkFound *bool) (FieldInfo, error) {
	fi := FieldInfo{
		Name:        fieldName,
		ColumnName:  fmt.Convert(fieldName).SnakeLow().String(),
		Type:        fieldType,
		Constraints: ConstraintNone,
		Ref:         tag.ref,
		RefColumn:   tag.refColumn,
		Relation:    tag.relation,
		GoType:      goType,
	}

	isID, isPK := fmt.IDorPrimaryKey(tableName, fieldName)
	if ((isID || isPK) && !*pkFound) || tag.pk {
		fi.IsPK = true
		*pkFound = true
		fi.Constraints |= ConstraintPK
	}
	if tag.unique {
		fi.Constraints |= ConstraintUnique
	}
	if tag.notNull {
		fi.Constraints |= ConstraintNotNull
	}
	if tag.autoIncrement {
		if fieldType == TypeText {
			return FieldInfo{}, fmt.Err("autoincrement not allowed on TypeText")
		}
		fi.Constraints |= ConstraintAutoIncrement
	}

	if fi.Ref != "" && fi.Relation == "" {
		fi.Relation = fkRelationName(fieldName)
	}
	if tag.fulltext {
		if fieldType != TypeText {
			return FieldInfo{}, fmt.Err("fulltext requires a string field:", fieldName)
		}
		fi.SearchPath = fi.ColumnName
		fi.Constraints |= ConstraintFulltext
	}
	if tag.relatedSearch != "" {
		if fi.Ref == "" {
			return FieldInfo{}, fmt.Err("fulltext=<column> requires ref=<table> on", fieldName)
		}
		fi.SearchPath = fi.Relation + "." + tag.relatedSearch
	}
	return fi, nil
}
